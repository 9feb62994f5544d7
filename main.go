package main

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
	"fmt"
	"os"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/apriori/cmd"
	"github.com/timtadh/apriori/config"
)

func init() {
	cmd.UsageMessage = "apriori --help"
	cmd.ExtendedMessage = `
apriori - level-wise frequent itemset mining

$ apriori -o <path> --support=<float> [Global Options] \
    <input-path> \
    [<reporter> [Reporter Options]]

Note: You must supply [Global Options] then <input-path> and finally the
      reporter. Changes in ordering are not supported.

Note: You may either supply the <input-path> as a regular file, a gzipped
      or zstd compressed file or a directory. Compressed files must end in
      '.gz' or '.zst'. The files of a directory are read in name order as
      one input.

Note: If you don't supply a reporter by default it will use 'chain log file'.
      See the the documentations for Reporters for details.

Note: An itemset is frequent when the fraction of transactions containing it
      is strictly greater than the support.


Global Options
    -h, --help                view this message
    --reporters               show the available reporters
    -o, --output=<path>       path to output directory (required)
                              NB: will overwrite contents of dir
    -c, --cache=<path>        path to cache directory (optional). When given
                              supports are kept in an on disk B+tree there.
                              NB: will overwrite contents of dir
    -s, --support=<float>     minimum support in (0, 1] (required)
    -m, --max-level=<int>     stop after itemsets of this size (default 0,
                              unbounded)
    -p, --parallelism=<int>   workers used to count and join candidates
                              (default 0 = one worker, -1 = all cpus)
    -l, --loader=<name>       names or int (default names)
    --no-sort                 do not lexsort the transactions before mining
    --config=<path>           a yaml file of settings. Command line options
                              override it.
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

Loaders
    names                       each line is a transaction of whitespace
                                separated item names. Items are ordered
                                lexicographically.

       names Example file:
            bread milk
            bread
            milk eggs

    int                         each line is a transaction of space
                                separated integers. Tokens which are not
                                integers are skipped. Items are ordered
                                numerically.

       int Example file:
            10 1 5 7
            213 2 5 1
            23 1 4 5 7
            3 4 1

Config File
    support: 0.05
    max-level: 4
    parallelism: -1
    loader: names
    sort: true
    cache: /tmp/apriori-cache
    output: /tmp/apriori

Reporters
    chain                     chain several reporters together (end the chain
                              with endchain)
    log                       log the frequent itemsets as
                              "<n> <level>: {items}, support"
    file                      write the itemsets to files in the output dir
    unique                    takes an "inner reporter" but only passes the
                              unique itemsets to inner reporter.
    max                       takes an "inner reporter" and passes it only
                              the maximal frequent itemsets once mining ends.
    skip                      takes an "inner reporter" and passes it every
                              n-th itemset.
    count                     summarize the supports of each level.
    metrics                   write prometheus metrics to the output dir.
    heap-profile              write a heap profile at the start of each level.

    log Options
        -l, level=<string>    log level the logger should use
        -p, prefix=<string>   a prefix to put before the log line

    file Options
        -p, patterns=<name>    the prefix of the name of the file in the output
                               directory to write the itemsets
                               (level, names, support)
        -e, embeddings=<name>  the prefix of the name of the file in the output
                               directory to write the supporting transactions
        --lattice=<name>       the name of the file in the output directory to
                               write the lattice (default lattice.edges)
        --no-lattice           don't write the lattice

        Note: all options are optional. There are default values setup.

    skip Options
        -n, every=<int>       pass every n-th itemset (default 1)

    count Options
        -f, file=<name>       file in the output directory (default counts)

    metrics Options
        -f, file=<name>       file in the output directory (default
                              metrics.prom)

    heap-profile Options
        -p, profile=<path>    the prefix of the heap profiles
        -a, after=<int>       start at this level (default 0)

    Examples

        $ apriori -o /tmp/apriori --support=.05 ./data/transactions.dat.gz

        $ apriori -o <path> -s .1 -l int -p -1 ./data/ \
            chain log file

        $ apriori --skip-log=DEBUG -o /tmp/apriori -s .01 -m 3 ./tx \
            chain \
                log -p all \
                max \
                    chain \
                        log -p max \
                        file -e max-embeddings -p max-patterns \
                    endchain \
                count
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:c:s:m:p:l:",
		[]string{
			"help",
			"output=", "cache=",
			"support=",
			"max-level=",
			"parallelism=",
			"loader=",
			"no-sort",
			"config=",
			"reporters",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "could not process your arguments")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	conf := &config.Config{
		Sort: true,
	}
	for _, oa := range optargs {
		if oa.Opt() == "--config" {
			f, err := config.LoadFile(cmd.AssertFileOrDirExists(oa.Arg()))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				cmd.Usage(cmd.ErrorCodes["badfile"])
			}
			f.Apply(conf)
		}
	}

	output := ""
	cache := ""
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-o", "--output":
			output = oa.Arg()
		case "-c", "--cache":
			cache = oa.Arg()
		case "-s", "--support":
			conf.Support = cmd.ParseFloat(oa.Arg())
		case "-m", "--max-level":
			conf.MaxLevel = cmd.ParseInt(oa.Arg())
		case "-p", "--parallelism":
			conf.Parallelism = cmd.ParseInt(oa.Arg())
		case "-l", "--loader":
			conf.Loader = oa.Arg()
		case "--no-sort":
			conf.Sort = false
		case "--config":
		case "--reporters":
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range cmd.Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	if output == "" {
		output = conf.Output
	}
	if cache == "" {
		cache = conf.Cache
	}

	if output == "" {
		fmt.Fprintf(os.Stderr, "You must supply an output dir (-o)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if err := cmd.Setup(conf, output, cache); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCode(err))
	}

	if cpuProfile != "" {
		stop, err := cmd.CPUProfile(cpuProfile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			cmd.Usage(cmd.ErrorCodes["badfile"])
		}
		defer stop()
	}

	return cmd.Main(args, conf)
}
