// Package trace records engine snapshots to a JSON-lines file and reads them
// back, so a run can be replayed or re-rendered offline.
//
// Every line holds one Record: the event name and the State published with
// it. Files ending in ".zst" are zstd-compressed and files ending in ".lz4"
// are lz4-compressed.
//
//	w, _ := trace.Create("run.jsonl.zst")
//	_, _ = w.Attach(eng.Events())
//	_ = eng.Run(ctx)
//	_ = eng.Wait(ctx)
//	_ = w.Close()
//
//	r, _ := trace.Open("run.jsonl.zst")
//	defer r.Close()
//	for {
//	    rec, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    replay(rec.State)
//	}
package trace
