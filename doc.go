// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
mwd validates and combines confidential transaction block bodies stored in
flat files.

A body holds the elements of one or more consecutive blocks together with
their headers, as written by package bodyfile.  The check command validates
every header and then the elements of the body as a whole, in parallel
shards.  The combine command joins two adjacent bodies into one, cancelling
the outputs of the first body that the second spends.

The long form of all options (except -C) can be specified in a configuration
file that is automatically parsed when mwd starts up.  By default, the
configuration file is located at ~/.mwd/mwd.conf on POSIX-style operating
systems and %LOCALAPPDATA%\Mwd\mwd.conf on Windows.  The -C (--configfile)
flag can be used to override this location.

Usage:

	mwd [OPTIONS] <command> <args>...

Application Options:

	-V, --version           Display version information and exit
	-A, --appdata=          Path to application home directory
	-C, --configfile=       Path to configuration file
	    --testnet           Use the test network
	    --simnet            Use the simulation test network
	    --shards=           Number of shards to validate bodies with; 0 uses
	                        one per CPU
	    --subsidyopen       Treat the blocks of checked bodies as within the
	                        opening subsidy window
	    --logdir=           Directory to log output
	    --nofilelogging     Disable file logging
	-d, --debuglevel=       Logging level for all subsystems {trace, debug,
	                        info, warn, error, critical} -- You may also
	                        specify <subsystem>=<level>,<subsystem2>=<level>,...
	                        to set the log level for individual subsystems --
	                        Use show to list available subsystems (info)
	    --cpuprofile=       Write CPU profile to the specified file

Help Options:

	-h, --help              Show this help message

Commands:

	check <body>...                 Validate the headers and elements of bodies
	combine <out> <first> <second>  Combine two adjacent bodies into one
*/
package main
