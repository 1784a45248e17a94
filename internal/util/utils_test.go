package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qtable-scheduler/internal/responses"
)

func TestCalculateAverage(t *testing.T) {
	waiting, response, turnAround := CalculateAverage([]responses.ProcessResponse{
		{WaitingTime: 2, ResponseTime: 0, TurnAroundTime: 6},
		{WaitingTime: 4, ResponseTime: 2, TurnAroundTime: 10},
	})
	assert.Equal(t, 3.0, waiting)
	assert.Equal(t, 1.0, response)
	assert.Equal(t, 8.0, turnAround)
}

func TestCalculateAverageEmpty(t *testing.T) {
	waiting, response, turnAround := CalculateAverage(nil)
	assert.Zero(t, waiting)
	assert.Zero(t, response)
	assert.Zero(t, turnAround)
}
