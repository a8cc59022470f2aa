package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kanak0604/market-campaigns/internal/entity"
)

func TestDeriveMetrics(t *testing.T) {
	m := entity.DeriveMetrics(4, 2, 1)
	assert.Equal(t, 4, m.TotalLeads)
	assert.Equal(t, 50.0, m.OpenRate)
	assert.Equal(t, 25.0, m.ConversionRate)
	assert.Equal(t, 50.0, m.ClickThroughRate)
}

func TestDeriveMetricsZeroDenominators(t *testing.T) {
	// Sem lead nenhum: tudo zero, nada de NaN
	m := entity.DeriveMetrics(0, 0, 0)
	assert.Zero(t, m.OpenRate)
	assert.Zero(t, m.ConversionRate)
	assert.Zero(t, m.ClickThroughRate)

	// Leads que nunca abriram: CTR zero mesmo com conversão registrada
	m = entity.DeriveMetrics(3, 0, 1)
	assert.Zero(t, m.ClickThroughRate)
	assert.Equal(t, 33.33, m.ConversionRate)
}

func TestDeriveMetricsRounding(t *testing.T) {
	m := entity.DeriveMetrics(3, 1, 2)
	assert.Equal(t, 33.33, m.OpenRate)
	assert.Equal(t, 66.67, m.ConversionRate)
	assert.Equal(t, 200.0, m.ClickThroughRate)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, entity.Round2(100.0/3.0))
	assert.Equal(t, 66.67, entity.Round2(200.0/3.0))
	assert.Equal(t, 0.0, entity.Round2(0))
}

func TestCampaignValidate(t *testing.T) {
	c := entity.Campaign{Name: "Spring Push"}
	assert.NoError(t, c.Validate())

	empty := entity.Campaign{}
	assert.Error(t, empty.Validate())
}
