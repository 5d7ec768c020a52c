package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *usecase.MigrationReport {
	return &usecase.MigrationReport{
		DryRun:           true,
		Batches:          2,
		Scanned:          150,
		Migrated:         149,
		AddressesCreated: 40,
		AddressesReused:  3,
		Failures: []usecase.MigrationFailure{{
			PropertyID: uuid.MustParse("0190b3b4-0000-7000-8000-000000000001"),
			Error:      domainerrors.NewErrorInfo(domainerrors.MissingFields("street")),
		}},
		Duration: 95 * time.Second,
		Status:   &usecase.MigrationStatus{Properties: 150, Embedded: 150},
	}
}

func TestPrintReport_Text(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printReport(&buf, sampleReport(), false))

	out := buf.String()
	assert.Contains(t, out, "Migration (dry run, nothing written)")
	assert.Contains(t, out, "1m35s")
	assert.Contains(t, out, "0190b3b4-0000-7000-8000-000000000001")
	assert.Contains(t, out, "MISSING_REQUIRED_FIELD")
	assert.Contains(t, out, "fully migrated")
}

func TestPrintReport_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printReport(&buf, sampleReport(), true))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["dryRun"])
	assert.InDelta(t, 149, decoded["migrated"], 0)
	assert.Len(t, decoded["failures"], 1)
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printStatus(&buf, &usecase.MigrationStatus{Properties: 3, Referenced: 3, FullyMigrated: true}, false))

	assert.Contains(t, buf.String(), "fully migrated")
	assert.Contains(t, buf.String(), "true")
}
