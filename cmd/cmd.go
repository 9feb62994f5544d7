package cmd

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
)

import (
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/apriori/config"
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/miners"
	"github.com/timtadh/apriori/miners/apriori"
	"github.com/timtadh/apriori/miners/reporters"
	"github.com/timtadh/apriori/types/itemset"
)

func init() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	if urandom, err := os.Open("/dev/urandom"); err == nil {
		seed := make([]byte, 8)
		if _, err := urandom.Read(seed); err == nil {
			rand.Seed(int64(binary.BigEndian.Uint64(seed)))
		}
		urandom.Close()
	}
}

// ErrorCodes maps the usage failures and the lattice.Classify kinds to
// process exit codes.
var ErrorCodes map[string]int = map[string]int{
	"usage":    0,
	"unknown":  1,
	"version":  2,
	"opts":     3,
	"badfloat": 4,
	"badint":   5,
	"baddir":   6,
	"badfile":  7,
	"config":   8,
	"input":    9,
	"empty":    10,
	"internal": 11,
}

var UsageMessage string
var ExtendedMessage string

func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	os.Exit(code)
}

// ErrorCode is the exit code for err.
func ErrorCode(err error) int {
	if err == nil {
		return 0
	}
	return ErrorCodes[lattice.Classify(err)]
}

func Input(input_path string) (reader io.Reader, closeall func(), err error) {
	stat, err := os.Stat(input_path)
	if err != nil {
		return nil, nil, &lattice.MissingInputError{Source: input_path, Err: err}
	}
	if stat.IsDir() {
		return InputDir(input_path)
	} else {
		return InputFile(input_path)
	}
}

func InputFile(input_path string) (reader io.Reader, closeall func(), err error) {
	freader, err := os.Open(input_path)
	if err != nil {
		return nil, nil, &lattice.MissingInputError{Source: input_path, Err: err}
	}
	if strings.HasSuffix(input_path, ".gz") {
		greader, err := gzip.NewReader(freader)
		if err != nil {
			freader.Close()
			return nil, nil, &lattice.MissingInputError{Source: input_path, Err: err}
		}
		return greader, func() {
			greader.Close()
			freader.Close()
		}, nil
	}
	if strings.HasSuffix(input_path, ".zst") {
		zreader, err := zstd.NewReader(freader)
		if err != nil {
			freader.Close()
			return nil, nil, &lattice.MissingInputError{Source: input_path, Err: err}
		}
		return zreader, func() {
			zreader.Close()
			freader.Close()
		}, nil
	}
	return freader, func() {
		freader.Close()
	}, nil
}

// InputDir concatenates every regular file of input_dir in name order.
func InputDir(input_dir string) (reader io.Reader, closeall func(), err error) {
	var readers []io.Reader
	var closers []func()
	closeall = func() {
		for _, closer := range closers {
			closer()
		}
	}
	dir, err := os.ReadDir(input_dir)
	if err != nil {
		return nil, nil, &lattice.MissingInputError{Source: input_dir, Err: err}
	}
	for _, info := range dir {
		if info.IsDir() {
			continue
		}
		creader, closer, err := InputFile(path.Join(input_dir, info.Name()))
		if err != nil {
			closeall()
			return nil, nil, err
		}
		readers = append(readers, creader)
		closers = append(closers, closer)
	}
	return io.MultiReader(readers...), closeall, nil
}

func ParseInt(str string) int {
	i, err := strconv.Atoi(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected an int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

func ParseFloat(str string) float64 {
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a float\n", str)
		Usage(ErrorCodes["badfloat"])
	}
	return f
}

// Setup validates conf and only then empties the output and cache
// directories into it. An invalid configuration leaves both untouched.
func Setup(conf *config.Config, output, cache string) error {
	if err := conf.Validate(); err != nil {
		return err
	}
	conf.Output = EmptyDir(output)
	if cache != "" {
		conf.Cache = EmptyDir(cache)
	}
	return nil
}

// EmptyDir creates dir, deleting anything already there.
func EmptyDir(dir string) string {
	dir = path.Clean(dir)
	_, err := os.Stat(dir)
	if err == nil {
		err = os.RemoveAll(dir)
	} else if os.IsNotExist(err) {
		err = nil
	}
	if err == nil {
		err = os.MkdirAll(dir, 0775)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["baddir"])
	}
	return dir
}

func AssertFileOrDirExists(fname string) string {
	fname = path.Clean(fname)
	_, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "File '%s' does not exist!\n", fname)
		Usage(ErrorCodes["badfile"])
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

func AssertFile(fname string) string {
	fname = path.Clean(fname)
	fi, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		return fname
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["badfile"])
	} else if fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was a directory, %s\n", fname)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

// CPUProfile starts a cpu profile written to path. The returned function
// stops it.
func CPUProfile(path string) (func(), error) {
	errors.Logf("DEBUG", "starting cpu profile: %v", path)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	err = pprof.StartCPUProfile(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		errors.Logf("DEBUG", "closing cpu profile")
		pprof.StopCPUProfile()
		err := f.Close()
		errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
	}, nil
}

func Loader(conf *config.Config, source string) itemset.Loader {
	switch conf.Loader {
	case "int":
		return itemset.NewIntLoader(source)
	case "", "names":
		return itemset.NewNameLoader(source)
	}
	fmt.Fprintf(os.Stderr, "Unknown itemset loader '%v'\n", conf.Loader)
	Usage(ErrorCodes["opts"])
	return nil
}

type Reporter func(map[string]Reporter, []string, lattice.Formatter, *config.Config) (miners.Reporter, []string)

func noOpts(name string, argv []string) []string {
	args, optargs, err := getopt.GetOpt(argv, "h", []string{"help"})
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		default:
			errors.Logf("ERROR", "Unknown flag '%v' for %v", oa.Opt(), name)
			Usage(ErrorCodes["opts"])
		}
	}
	return args
}

func unknownReporter(reports map[string]Reporter, name string) {
	errors.Logf("ERROR", "Unknown reporter '%v'", name)
	fmt.Fprintln(os.Stderr, "Reporters:")
	for k := range reports {
		fmt.Fprintln(os.Stderr, "  ", k)
	}
	Usage(ErrorCodes["opts"])
}

// inner builds the reporter named by args[0] for the wrapping reporter name.
func inner(reports map[string]Reporter, name string, args []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	if len(args) == 0 {
		errors.Logf("ERROR", "You must supply an inner reporter to %v", name)
		fmt.Fprintf(os.Stderr, "try: %v file\n", name)
		Usage(ErrorCodes["opts"])
	} else if _, has := reports[args[0]]; !has {
		unknownReporter(reports, args[0])
	}
	return reports[args[0]](reports, args[1:], fmtr, conf)
}

func createFailed(name string, err error) {
	errors.Logf("ERROR", "There was error creating the %v reporter", name)
	errors.Logf("ERROR", "%v", err)
	os.Exit(ErrorCodes["badfile"])
}

func logReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hl:p:",
		[]string{
			"help",
			"level=",
			"prefix=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	level := "INFO"
	prefix := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-l", "--level":
			level = oa.Arg()
		case "-p", "--prefix":
			prefix = oa.Arg()
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return reporters.NewLog(fmtr, level, prefix), args
}

func fileReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hp:e:",
		[]string{
			"help",
			"patterns=",
			"embeddings=",
			"lattice=",
			"no-lattice",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	patterns := "patterns"
	embeddings := "embeddings"
	lat := "lattice.edges"
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-p", "--patterns":
			patterns = oa.Arg()
		case "-e", "--embeddings":
			embeddings = oa.Arg()
		case "--lattice":
			lat = oa.Arg()
		case "--no-lattice":
			lat = ""
		default:
			errors.Logf("ERROR", "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	fr, err := reporters.NewFile(conf, fmtr, patterns, embeddings, lat)
	if err != nil {
		createFailed("file", err)
	}
	return fr, args
}

func chainReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args := noOpts("chain", argv)
	rptrs := make([]miners.Reporter, 0, 10)
	for len(args) >= 1 {
		if args[0] == "endchain" {
			args = args[1:]
			break
		}
		if _, has := reports[args[0]]; !has {
			unknownReporter(reports, args[0])
		}
		var rptr miners.Reporter
		rptr, args = reports[args[0]](reports, args[1:], fmtr, conf)
		rptrs = append(rptrs, rptr)
	}
	if len(rptrs) == 0 {
		errors.Logf("ERROR", "Empty chain")
		fmt.Fprintln(os.Stderr, "try: chain log file")
		Usage(ErrorCodes["opts"])
	}
	return &reporters.Chain{Reporters: rptrs}, args
}

func uniqueReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args := noOpts("unique", argv)
	rptr, args := inner(reports, "unique", args, fmtr, conf)
	return reporters.NewUnique(rptr), args
}

func maxReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args := noOpts("max", argv)
	rptr, args := inner(reports, "max", args, fmtr, conf)
	return reporters.NewMax(rptr), args
}

func skipReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hn:",
		[]string{
			"help",
			"every=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	every := 1
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-n", "--every":
			every = ParseInt(oa.Arg())
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	rptr, args := inner(reports, "skip", args, fmtr, conf)
	return reporters.NewSkip(every, rptr), args
}

func countReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hf:",
		[]string{
			"help",
			"file=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	filename := "counts"
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-f", "--file":
			filename = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return reporters.NewCount(conf, filename), args
}

func metricsReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hf:",
		[]string{
			"help",
			"file=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	filename := "metrics.prom"
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-f", "--file":
			filename = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	m, err := reporters.NewMetrics(conf, filename)
	if err != nil {
		createFailed("metrics", err)
	}
	return m, args
}

func heapProfileReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hp:a:",
		[]string{
			"help",
			"profile=",
			"after=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	after := 0
	profile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-p", "--profile":
			profile = oa.Arg()
		case "-a", "--after":
			after = ParseInt(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	if profile == "" {
		fmt.Fprintf(os.Stderr, "You must supply a location to write the profile (-p) in heap-profile.\n")
		Usage(ErrorCodes["opts"])
	}
	return reporters.NewHeapProfile(profile, after), args
}

var Reporters map[string]Reporter = map[string]Reporter{
	"log":          logReporter,
	"file":         fileReporter,
	"chain":        chainReporter,
	"unique":       uniqueReporter,
	"max":          maxReporter,
	"skip":         skipReporter,
	"count":        countReporter,
	"metrics":      metricsReporter,
	"heap-profile": heapProfileReporter,
}

// MakeReporter builds the reporter described by args. With no args it is
// the chain "log file".
func MakeReporter(args []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	if len(args) == 0 {
		return Reporters["chain"](Reporters, []string{"log", "file"}, fmtr, conf)
	} else if _, has := Reporters[args[0]]; !has {
		unknownReporter(Reporters, args[0])
	}
	return Reporters[args[0]](Reporters, args[1:], fmtr, conf)
}

// Main loads the input named by args[0], mines it and reports through the
// reporter described by the remaining args. It returns the exit code.
func Main(args []string, conf *config.Config) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply an input path\n")
		Usage(ErrorCodes["opts"])
	}
	if err := conf.Validate(); err != nil {
		errors.Logf("ERROR", "%v", err)
		return ErrorCode(err)
	}
	inputPath := path.Clean(args[0])
	if _, err := os.Stat(inputPath); err != nil {
		err = &lattice.MissingInputError{Source: inputPath, Err: err}
		errors.Logf("ERROR", "%v", err)
		return ErrorCode(err)
	}
	args = args[1:]

	getInput := func() (io.Reader, func(), error) {
		return Input(inputPath)
	}

	errors.Logf("INFO", "Got configuration about to load dataset")
	dt, u, err := Loader(conf, inputPath).Load(getInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the loading process\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return ErrorCode(err)
	}
	if conf.Sort {
		dt = dt.Lexsort()
	}
	fmtr := &itemset.Formatter{Universe: u, Transactions: dt}

	rptr, args := MakeReporter(args, fmtr, conf)
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "unconsumed commandline options: '%v'\n", strings.Join(args, " "))
		Usage(ErrorCodes["opts"])
	}

	errors.Logf("INFO", "loaded data, about to start mining")
	miner := apriori.NewMiner(conf)
	l, mineErr := miner.Mine(dt, rptr)

	code := 0
	if e := miner.Close(); e != nil {
		errors.Logf("ERROR", "error closing %v", e)
		code = ErrorCodes["unknown"]
	}
	if mineErr != nil {
		fmt.Fprintf(os.Stderr, "There was error during the mining process\n")
		fmt.Fprintf(os.Stderr, "%v\n", mineErr)
		return ErrorCode(mineErr)
	}
	errors.Logf("INFO", "Done! %d frequent itemsets, largest has %d items", l.Size(), l.Levels())
	return code
}
