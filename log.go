package sevm

// Log is one LOG0..LOG4 event, recorded into the context trace in
// execution order rather than collected into a flat slice, so a reader can
// tell which call frame emitted it (spec.md section 4.7).
type Log struct {
	Address Addr
	Data    []byte
	Topics  []W256
}
