package types

// ResultCodeOK is the fixed success code every enveloped response uses.
const ResultCodeOK = "000000"

// Envelope is the wire shape for every API response.
// Success carries ResultCodeOK, "OK" and the payload; failures carry the
// domain error code, a public message, and a null data field.
type Envelope struct {
	ResultCode string `json:"result_code"`
	ResultMsg  string `json:"result_msg"`
	Data       any    `json:"data"`
	Details    any    `json:"details,omitempty"`
}
