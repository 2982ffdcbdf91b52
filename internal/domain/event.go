package domain

import (
	"context"
	"time"
)

// RawAlert is the flat row shape of the travel-alert feed, used both for CSV
// rows and for JSON messages on the source topic.
type RawAlert struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	ISO3166     string `json:"ISO3166"` // comma-separated ISO2 codes
	Source      string `json:"Source"`  // citation, e.g. "WHO 9/20、美國CDC 9/22"
	SourceTime  string `json:"SourceTime"`
	SourceTime2 string `json:"SourceTime2"`
	Effective   string `json:"effective"`
	Sent        string `json:"sent"`
	Expires     string `json:"expires"`
	DataSource  string `json:"data_source,omitempty"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// SurveillanceRecord is one bulletin after parsing, before resolution.
type SurveillanceRecord struct {
	Headline        string
	HeadlineCountry string
	HeadlineDisease string
	Description     string
	ISO3166         string
	Source          string
	SourceTime      Date
	SourceTime2     Date
	Date            Date // publish date, taken from "effective"
	Sent            Date
	Expires         Date
	DataSource      string
}

// ResolvedRecord is a record with its country set, disease list and cleaned
// source list attached. Countries and Diseases are nil when nothing resolved.
type ResolvedRecord struct {
	SurveillanceRecord

	Countries    []string
	DiseaseLabel string // canonical label before the "/" split
	Diseases     []string
	SourceList   []string
}

// ResolvedEvent is one output row: a single country and a single disease.
// Empty strings mark missing values.
type ResolvedEvent struct {
	ID                string   `json:"id"`
	CountryISO3       string   `json:"country_iso3"`
	DiseaseName       string   `json:"disease_name"`
	DiseaseNameEN     string   `json:"disease_name_en"`
	CountryNameZH     string   `json:"country_name_zh"`
	CountryNameEN     string   `json:"country_name_en"`
	CountryDisease    string   `json:"country_disease"`
	CountryDiseaseEN  string   `json:"country_disease_en"`
	TransmissionRoute string   `json:"transmission_route"`
	WHORegion         string   `json:"WHO_region"`
	WHORegionEN       string   `json:"WHO_region_en"`
	Date              Date     `json:"date"`
	Description       string   `json:"description"`
	Source            string   `json:"Source"`
	SourceList        []string `json:"Source_list"`
	SourceTime        Date     `json:"SourceTime"`
	SourceTime2       Date     `json:"SourceTime2"`

	ProcessedAt time.Time `json:"processed_at"`
}

// TimelinessRecord holds the candidate source dates of one de-duplicated
// bulletin and the reconciled lag. IntervalDays is nil when either side is
// missing.
type TimelinessRecord struct {
	Date                  Date
	Description           string
	Source                string
	SourceTime            Date
	SourceTime2           Date
	SourceTimeSource      Date
	SourceTimeDescription Date
	SourceTimeAdj         Date
	IntervalDays          *int
}

// YearlyTimeliness aggregates TimelinessRecords by publish year. Median and
// mean are nil when no record of the year has an interval.
type YearlyTimeliness struct {
	Year           int      `json:"year"`
	MedianInterval *float64 `json:"median_interval"`
	MeanInterval   *float64 `json:"mean_interval"`
	MissingPercent float64  `json:"missing_percent"`
}

// EpidemicSource is one row of the epidemic-intelligence workbook.
type EpidemicSource struct {
	Subject     string
	Source      string
	SourceTime  Date
	SourceTime2 Date
	PublishTime Date
}
