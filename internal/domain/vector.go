package domain

import (
	"math"

	"github.com/DRSN-tech/semantic-search/pkg/e"
)

// Normalize приводит вектор к единичной L2-норме на месте.
// Вектор с нулевой нормой отклоняется: такая точка не несёт сигнала
// и не должна попадать ни в хранилище, ни в запрос.
func Normalize(vec []float32) error {
	if len(vec) == 0 {
		return e.ErrEmptyVectors
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}

	norm := math.Sqrt(sum)
	if norm == 0 {
		return e.ErrZeroVector
	}

	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}

	return nil
}

// Combine возвращает поэлементное среднее текстового и графического векторов,
// приведённое к единичной норме. Оба входных вектора должны быть одной размерности.
func Combine(text, image []float32) ([]float32, error) {
	if len(text) == 0 || len(image) == 0 {
		return nil, e.ErrEmptyVectors
	}
	if len(text) != len(image) {
		return nil, e.ErrVectorDimension
	}

	combined := make([]float32, len(text))
	for i := range text {
		combined[i] = (text[i] + image[i]) / 2
	}

	if err := Normalize(combined); err != nil {
		return nil, err
	}

	return combined, nil
}
