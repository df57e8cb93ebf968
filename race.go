// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package objpool

// raceEnabled is true when the race detector is active. The heaviest
// GOMAXPROCS-pinned stress tests scale their iteration counts down
// under the race detector, which serializes memory accesses enough
// that the full counts would make the suite too slow to be useful.
const raceEnabled = true
