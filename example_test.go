// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package objpool_test

import (
	"fmt"

	"code.hybscloud.com/objpool"
)

type traceRecord struct {
	timestampNanos int64
	eventID        uint32
}

func Example() {
	p, err := objpool.Init[traceRecord](1024, 0, objpool.AllocHintNormal)
	if err != nil {
		panic(err)
	}

	obj, err := p.Acquire()
	if err != nil {
		if objpool.IsEmpty(err) {
			return
		}
		panic(err)
	}
	obj.eventID = 42

	if err := p.Release(obj); err != nil {
		panic(err)
	}

	var reported int
	p.Fini(nil, func(ctx any, obj any, isForeign, isElement bool) {
		reported++
	})
	fmt.Println(reported)
	// Output: 1024
}
