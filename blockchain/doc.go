// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockchain implements the proof-of-work difficulty rules.

Two retargeting regimes coexist on one chain, selected by height: a legacy
per-epoch retarget with a 4x/quarter clamp, and a windowed retarget that
averages the targets of recent blocks and dampens the observed timespan
toward the ideal before applying it.  A small set of hard-coded height
ranges bypass both regimes entirely with fixed targets; these are permanent
consensus history and are reproduced verbatim.

The windowed regime additionally relaxes difficulty when a candidate header
arrives long after the chain tip.  Below the ladder activation height a
single threshold relaxes straight to a fixed target; at and above it a
graduated ladder scales the current target by how late the header is.  When
no ladder rung fires, the graduated path returns the tip's difficulty
unchanged rather than falling through to the window retarget, while the
pre-ladder path always runs the window retarget.  The asymmetry is
deliberate here because it is what the chain's history enforces, even though
it freezes difficulty whenever a well-timed candidate header is supplied at
ladder heights.

All functions are pure computations over a read-only view of the block
index; the package keeps no state of its own across calls.
*/
package blockchain
