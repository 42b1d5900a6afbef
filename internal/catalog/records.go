package catalog

import (
	"encoding/json"
	"os"

	"github.com/DRSN-tech/semantic-search/pkg/e"
	"github.com/jimlawless/whereami"
)

// RawRecord — запись каталога в формате исходного снапшота.
type RawRecord struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	Images      []string `json:"images"`
	Colors      []string `json:"colors"` // hex-коды, например "#1f3a5f"
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Gender      string   `json:"gender"`
	Region      string   `json:"region"`
	Sizes       []string `json:"sizes"`
	Price       string   `json:"price"` // десятичная строка, например "599.99"
	Currency    string   `json:"currency"`
	Rating      float64  `json:"rating"`
	Material    string   `json:"material"`
}

// LoadRecords читает снапшот каталога из JSON-файла.
func LoadRecords(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var records []RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return records, nil
}
