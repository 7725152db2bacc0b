package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"match-service/internal/match/model"
)

// Job описывает прогон matchcli в YAML.
//
//	workbook: data/book.xlsx
//	left: Customers
//	right: Vendors
//	left_col: Name
//	right_col: Name
//	threshold: 60
//	self_decide:
//	  - {threshold: 90, left: Name, right: Name}
//	  - {threshold: 80, left: City, right: City, skip_blank: true}
//	  - {threshold: 85, left: Phone, right: Phone}
type Job struct {
	Workbook    string            `yaml:"workbook"`
	Out         string            `yaml:"out"`
	Left        string            `yaml:"left"`
	Right       string            `yaml:"right"`
	LeftColumn  string            `yaml:"left_col"`
	RightColumn string            `yaml:"right_col"`
	Threshold   *int              `yaml:"threshold"`
	Limit       *int              `yaml:"limit"`
	Mode        string            `yaml:"mode"`
	SelfDecide  []model.Criterion `yaml:"self_decide"`
}

var ErrJob = errors.New("invalid job file")

// LoadJob читает и проверяет файл задания. Неизвестные ключи считаются ошибкой.
func LoadJob(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var j Job
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&j); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrJob, path, err)
	}
	if n := len(j.SelfDecide); n != 0 && n != len(model.Criteria{}) {
		return nil, fmt.Errorf("%w: self_decide needs exactly %d criteria, got %d", ErrJob, len(model.Criteria{}), n)
	}
	return &j, nil
}

// Request собирает параметры прогона; пустые threshold/limit берутся из cfg.
func (j *Job) Request(cfg Config) (model.Request, error) {
	mode, err := model.ParseMode(j.Mode)
	if err != nil {
		return model.Request{}, fmt.Errorf("%w: %v", ErrJob, err)
	}
	req := model.Request{
		LeftSheet:   j.Left,
		RightSheet:  j.Right,
		LeftColumn:  j.LeftColumn,
		RightColumn: j.RightColumn,
		Threshold:   cfg.DefaultThreshold,
		Limit:       cfg.DefaultLimit,
		Mode:        mode,
	}
	if j.Threshold != nil {
		req.Threshold = *j.Threshold
	}
	if j.Limit != nil {
		req.Limit = *j.Limit
	}
	if len(j.SelfDecide) > 0 {
		var cs model.Criteria
		copy(cs[:], j.SelfDecide)
		req.SelfDecide = &cs
	}
	return req, nil
}
