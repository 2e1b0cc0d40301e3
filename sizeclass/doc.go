// Package sizeclass routes variable-size requests onto fixed-size pools.
//
// A Config describes a linear ladder of classes. Class i serves nodes of
// (i+1)*Step bytes, so a request of n bytes lands in class ceil(n/Step)-1 and
// wastes at most Step-1 bytes. Requests larger than Classes*Step bypass the
// pools and go to a fallback backing.
//
// Routers are explicit values: build one with New and pass it to the code
// that allocates. Default returns a lazily built, process-wide router for
// callers that want a shared instance.
//
//	r, err := sizeclass.New(sizeclass.ConfigDefault)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	b, err := r.Alloc(20) // served by the 24-byte class
//	...
//	err = r.Free(b, 20)   // the same byte count is required
package sizeclass
