/*
 * Synacor VM - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	getopt "github.com/pborman/getopt/v2"
	config "github.com/rcornwell/synacor/config/configparser"
	console "github.com/rcornwell/synacor/emu/console"
	vm "github.com/rcornwell/synacor/emu/vm"
	logger "github.com/rcornwell/synacor/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optLenient := getopt.BoolLong("lenient", 'n', "Skip malformed operands instead of faulting")
	optDebug := getopt.BoolLong("debug", 'd', "Mirror debug logging to stderr")
	optSelfTest := getopt.BoolLong("selftest", 't', "Run the built-in test program")
	optDump := getopt.BoolLong("dump", 'm', "Dump memory after the run")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("program.bin")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	lenient := *optLenient
	debug := *optDebug
	logFile := *optLogFile
	stackLimit := 0

	// The configuration file may set what the flags set; flags given
	// on the command line win.
	if *optConfig != "" {
		config.RegisterSwitch("strict", func(string) error {
			lenient = false
			return nil
		})
		config.RegisterSwitch("lenient", func(string) error {
			lenient = true
			return nil
		})
		config.RegisterSwitch("debug", func(string) error {
			debug = true
			return nil
		})
		config.RegisterOption("logfile", func(v string) error {
			if logFile == "" {
				logFile = v
			}
			return nil
		})
		config.RegisterOption("stackmax", func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return fmt.Errorf("bad stackmax value: %s", v)
			}
			stackLimit = n
			return nil
		})

		if err := config.LoadConfigFile(*optConfig); err != nil {
			fmt.Fprintln(os.Stderr, "configuration: "+err.Error())
			os.Exit(1)
		}
		if *optLenient {
			lenient = true
		}
	}

	var file *os.File
	if logFile != "" {
		file, _ = os.Create(logFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, debug))
	slog.SetDefault(Logger)

	Logger.Info("Synacor VM started")

	machine := vm.New(!lenient)
	if stackLimit > 0 {
		machine.SetStackLimit(stackLimit)
	}
	machine.SetOutput(os.Stdout)

	var cons *console.Console
	if console.Supported() {
		cons = console.New("> ")
		machine.SetInput(cons)
	} else {
		machine.SetInput(bufio.NewReader(os.Stdin))
	}

	if *optSelfTest {
		machine.LoadTest()
	} else {
		args := getopt.Args()
		if len(args) != 1 {
			getopt.Usage()
			os.Exit(1)
		}
		if err := machine.Load(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", machine.ErrorMessage(), err.Error())
			os.Exit(1)
		}
	}

	status := machine.Run()
	if cons != nil {
		cons.Close()
	}

	if *optDump {
		machine.DumpMemory(os.Stdout)
	}

	if status != vm.OK {
		fmt.Fprintln(os.Stderr, "machine fault: "+machine.ErrorMessage())
		os.Exit(1)
	}
}
