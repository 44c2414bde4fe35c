package storage

import (
	"encoding/json"
	"errors"

	"evogen/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeSeries(s model.Series) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeSeries(data []byte) (model.Series, error) {
	var series model.Series
	if err := json.Unmarshal(data, &series); err != nil {
		return model.Series{}, err
	}
	if err := checkVersion(series.VersionedRecord); err != nil {
		return model.Series{}, err
	}
	return series, nil
}

func EncodeSolutions(records []model.SolutionRecord) ([]byte, error) {
	return json.Marshal(records)
}

func DecodeSolutions(data []byte) ([]model.SolutionRecord, error) {
	var records []model.SolutionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := checkVersion(record.VersionedRecord); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
