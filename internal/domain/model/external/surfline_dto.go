package external

import "encoding/json"

type SurflineTidesResponse struct {
	Data struct {
		Tides []SurflineTide `json:"tides"`
	} `json:"data"`
}

type SurflineTide struct {
	Timestamp int64   `json:"timestamp"`
	UTCOffset int     `json:"utcOffset"`
	Type      string  `json:"type"`
	Height    float64 `json:"height"`
}

type SurflineRatingResponse struct {
	Data struct {
		Rating []SurflineRating `json:"rating"`
	} `json:"data"`
}

type SurflineRating struct {
	Timestamp int64 `json:"timestamp"`
	UTCOffset int   `json:"utcOffset"`
	Rating    struct {
		Key   string  `json:"key"`
		Value float64 `json:"value"`
	} `json:"rating"`
}

type SurflineWaveResponse struct {
	Data struct {
		Wave []SurflineWave `json:"wave"`
	} `json:"data"`
}

type SurflineWave struct {
	Timestamp int64 `json:"timestamp"`
	Surf      struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"surf"`
}

// SurflineSearchResponse is one section of the site search result
type SurflineSearchResponse struct {
	Hits SurflineSearchHits `json:"hits"`
}

type SurflineSearchHits struct {
	Hits []SurflineSearchHit `json:"-"`
}

type SurflineSearchHit struct {
	ID     string `json:"_id"`
	Source struct {
		Name     string `json:"name"`
		Location *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"location"`
	} `json:"_source"`
}

// UnmarshalJSON keeps the decodable hits with an id and a location and skips the rest
func (h *SurflineSearchHits) UnmarshalJSON(data []byte) error {
	var raw struct {
		Hits []json.RawMessage `json:"hits"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	h.Hits = make([]SurflineSearchHit, 0, len(raw.Hits))
	for _, item := range raw.Hits {
		var hit SurflineSearchHit
		if err := json.Unmarshal(item, &hit); err != nil {
			continue
		}
		if hit.ID == "" || hit.Source.Location == nil {
			continue
		}
		h.Hits = append(h.Hits, hit)
	}
	return nil
}
