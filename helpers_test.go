package murmur_test

import (
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/murmur/mock"
)

// sequentialIDs returns an IDGenerator issuing "m1", "m2", ...
func sequentialIDs() *mock.IDGenerator {
	var n atomic.Int64
	return &mock.IDGenerator{NewIDFn: func() string {
		return fmt.Sprintf("m%d", n.Add(1))
	}}
}
