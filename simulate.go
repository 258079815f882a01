package ancore

// Outcome is the classified result of a simulation round trip.
// This is a sealed interface - exactly three variants exist: SuccessOutcome,
// RestoreOutcome, and FailureOutcome.
type Outcome interface {
	// isOutcome is unexported to seal the interface.
	isOutcome()
}

// SuccessOutcome reports a successful dry-run: the resource footprint and
// fee to merge into the transaction, and the contract's return value.
type SuccessOutcome struct {
	Footprint      Footprint
	MinResourceFee int64
	ReturnValue    Value
	LatestLedger   uint32
}

func (o *SuccessOutcome) isOutcome() {}

// RestoreOutcome reports that referenced ledger state has expired and must
// be restored out-of-band before the whole pipeline is retried. It is
// terminal for the current attempt; re-simulating without restoration is
// guaranteed to fail again.
type RestoreOutcome struct {
	Preamble RestorePreamble
}

func (o *RestoreOutcome) isOutcome() {}

// FailureOutcome reports a simulator error. Malformed marks the defensive
// fallback for a response that matched no known outcome shape.
type FailureOutcome struct {
	Diagnostic string
	Malformed  bool
}

func (o *FailureOutcome) isOutcome() {}

// Err converts the failure into its taxonomy error.
func (o *FailureOutcome) Err() error {
	return &SimulationFailedError{Diagnostic: o.Diagnostic, Malformed: o.Malformed}
}

// ClassifyResponse deterministically maps a raw simulation response to one
// of the three outcomes. A response matching none of the known shapes maps
// to a malformed FailureOutcome with a distinguishing diagnostic, so it is
// never confused with a genuine simulator-reported failure.
func ClassifyResponse(resp *SimulationResponse) Outcome {
	if resp == nil {
		return &FailureOutcome{Diagnostic: "nil simulation response", Malformed: true}
	}

	if resp.Error != "" {
		return &FailureOutcome{Diagnostic: resp.Error}
	}

	if resp.RestorePreamble != nil {
		return &RestoreOutcome{Preamble: *resp.RestorePreamble}
	}

	if len(resp.Results) > 0 {
		ret, err := decodeReturnValue(resp.Results[0].ReturnValue)
		if err != nil {
			return &FailureOutcome{
				Diagnostic: "undecodable return value: " + err.Error(),
				Malformed:  true,
			}
		}
		return &SuccessOutcome{
			Footprint:      resp.Footprint,
			MinResourceFee: resp.MinResourceFee,
			ReturnValue:    ret,
			LatestLedger:   resp.LatestLedger,
		}
	}

	return &FailureOutcome{
		Diagnostic: "response matched no known outcome shape",
		Malformed:  true,
	}
}

// decodeReturnValue decodes a result entry's return value; an empty entry
// reads as void.
func decodeReturnValue(raw []byte) (Value, error) {
	if len(raw) == 0 {
		return &VoidValue{}, nil
	}
	return UnmarshalValue(raw)
}

// assemble merges a successful simulation into the raw transaction.
func assemble(raw *RawTransaction, success *SuccessOutcome) *AssembledTransaction {
	return &AssembledTransaction{
		Raw:         raw,
		Footprint:   success.Footprint,
		ResourceFee: success.MinResourceFee,
		ReturnValue: success.ReturnValue,
	}
}
