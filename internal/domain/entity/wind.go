package entity

import "encoding/json"

type WindClassification int

const (
	WindOffshore WindClassification = iota
	WindCrossShore
	WindOnshore
)

func (w WindClassification) String() string {
	switch w {
	case WindOffshore:
		return "offshore"
	case WindCrossShore:
		return "crossShore"
	default:
		return "onshore"
	}
}

func (w WindClassification) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}
