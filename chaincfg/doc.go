// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the consensus parameter bundle the difficulty
// engine is configured with.
//
// For main packages, a (typically global) var may be assigned the address of
// one of the standard Params vars/functions for use as the application's
// "active" network.  When a parameter is needed, it may then be looked up
// through this variable (either directly, or hidden in a library call).
//
//	package main
//
//	import (
//		"flag"
//
//		"github.com/classic2/diffengine/chaincfg"
//	)
//
//	var testnet = flag.Bool("testnet", false, "operate on the test network")
//
//	// By default (without -testnet), use mainnet.
//	var activeParams = chaincfg.MainNetParams()
package chaincfg
