package referenceframe

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"go.viam.com/kinemodel/logging"
)

// ModelConfig is a whole model in raw form.
type ModelConfig struct {
	Name   string        `json:"name"`
	Links  []LinkConfig  `json:"links"`
	Joints []JointConfig `json:"joints"`
}

// ParseConfig constructs every link and joint, failing on the first local validation error, and then
// builds the Robot.
func (cfg *ModelConfig) ParseConfig(logger logging.Logger) (*Robot, error) {
	links := make([]*Link, 0, len(cfg.Links))
	for i := range cfg.Links {
		l, err := cfg.Links[i].ParseConfig()
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	joints := make([]*Joint, 0, len(cfg.Joints))
	for i := range cfg.Joints {
		j, err := cfg.Joints[i].ParseConfig()
		if err != nil {
			return nil, err
		}
		joints = append(joints, j)
	}
	return NewRobot(cfg.Name, links, joints, logger)
}

// NewRobotFromRecords constructs every link and joint from raw records, in order, and builds the
// Robot. Construction stops at the first record that fails local validation.
func NewRobotFromRecords(name string, links, joints []Record, logger logging.Logger) (*Robot, error) {
	cfg := &ModelConfig{Name: name}
	for _, rec := range links {
		lc, err := DecodeLinkConfig(rec)
		if err != nil {
			return nil, err
		}
		cfg.Links = append(cfg.Links, *lc)
	}
	for _, rec := range joints {
		jc, err := DecodeJointConfig(rec)
		if err != nil {
			return nil, err
		}
		cfg.Joints = append(cfg.Joints, *jc)
	}
	return cfg.ParseConfig(logger)
}

// modelRecordsJSON is the JSON document form of a model: raw records, decoded the same way as records
// produced by any other parser.
type modelRecordsJSON struct {
	Name   string   `json:"name"`
	Links  []Record `json:"links"`
	Joints []Record `json:"joints"`
}

// UnmarshalModelJSON will parse the given JSON data into a Robot. modelName sets the name of the
// model, and the name from the JSON is used if it is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string, logger logging.Logger) (*Robot, error) {
	// empty data probably means that there is no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}
	m := &modelRecordsJSON{}
	if err := json.Unmarshal(jsonData, m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	if modelName == "" {
		modelName = m.Name
	}
	return NewRobotFromRecords(modelName, m.Links, m.Joints, logger)
}

// ParseModelJSONFile will read a given file and then parse the contained JSON data.
func ParseModelJSONFile(filename, modelName string, logger logging.Logger) (*Robot, error) {
	//nolint:gosec
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData, modelName, logger)
}
