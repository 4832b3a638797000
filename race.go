// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package parq

// RaceEnabled is true when the race detector is active.
// The concurrent pipeline tests, which trigger false positives due to
// cross-variable memory ordering, are excluded from race builds by their
// own build constraint rather than by this flag.
const RaceEnabled = true
