// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package rpm2cpio

import (
	"context"
	"encoding/json"
	"time"
)

// TelemetryData holds all telemetry data of a conversion.
type TelemetryData struct {
	// ExtractionDuration is the time it took to convert the package
	ExtractionDuration time.Duration `json:"extraction_duration"`

	// InputSize is the size of the input
	InputSize int64 `json:"input_size"`

	// LastExtractionError is the error that stopped the conversion
	LastExtractionError error `json:"last_extraction_error"`

	// OutputSize is the size of the decompressed cpio archive
	OutputSize int64 `json:"output_size"`

	// PayloadFormat is the compression format of the payload
	PayloadFormat string `json:"payload_format"`

	// PayloadOffset is the offset of the payload after the lead
	PayloadOffset int64 `json:"payload_offset"`
}

// String returns a string representation of [TelemetryData].
func (m TelemetryData) String() string {
	b, _ := json.Marshal(m)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (m TelemetryData) MarshalJSON() ([]byte, error) {
	var lastError string
	if m.LastExtractionError != nil {
		lastError = m.LastExtractionError.Error()
	}

	type Alias TelemetryData
	return json.Marshal(&struct {
		LastExtractionError string `json:"last_extraction_error"`
		*Alias
	}{
		LastExtractionError: lastError,
		Alias:               (*Alias)(&m),
	})
}

// TelemetryHook is a function type that performs operations on [TelemetryData]
// after a conversion has finished which can be used to submit the [TelemetryData]
// to a telemetry service, for example.
type TelemetryHook func(context.Context, *TelemetryData)
