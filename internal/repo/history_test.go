package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/models"
)

func TestHistoryCacheOrderAndStats(t *testing.T) {
	c := NewHistoryCache()

	c.Seed([]models.Prediction{
		{FileName: "b.fasta", Pathogen: "Escherichia coli", MDR: true},
		{FileName: "a.fasta", Pathogen: "Klebsiella pneumoniae"},
	})
	c.Add(models.Prediction{FileName: "c.fasta", Pathogen: "Escherichia coli"})

	got := c.List()
	assert.Equal(t, []string{"c.fasta", "b.fasta", "a.fasta"},
		[]string{got[0].FileName, got[1].FileName, got[2].FileName},
		"newest first")

	stats := c.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.MDR)
	assert.Equal(t, 2, stats.Pathogens["Escherichia coli"])
	assert.Equal(t, 1, stats.Pathogens["Klebsiella pneumoniae"])
}

func TestHistorySeedReplaces(t *testing.T) {
	c := NewHistoryCache()
	c.Add(models.Prediction{FileName: "stale.fasta"})
	c.Seed([]models.Prediction{{FileName: "fresh.fasta"}})

	got := c.List()
	assert.Len(t, got, 1)
	assert.Equal(t, "fresh.fasta", got[0].FileName)
}
