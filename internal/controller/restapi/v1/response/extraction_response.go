package response

import "github.com/avmetrik/Metadata-Extractor/internal/entity"

type ExtractionList struct {
	Extractions []*entity.Extraction `json:"extractions"`
	Count       int                  `json:"count"`
}
