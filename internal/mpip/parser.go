package mpip

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/specialistvlad/mpipgo/internal/model"
	"golang.org/x/text/encoding/charmap"
)

// Parser assembles a ParsedRecord from a Document. A zero Parser is usable:
// it classifies with the default rules and stamps records with time.Now.
type Parser struct {
	Classifier *Classifier
	// Override is an explicit interface label that bypasses classification.
	Override string
	// Now returns the parse timestamp; tests replace it.
	Now func() time.Time
}

// NewParser creates a Parser with the given classifier and interface
// override.
func NewParser(classifier *Classifier, override string) *Parser {
	return &Parser{Classifier: classifier, Override: override, Now: time.Now}
}

// Parse runs every extractor against doc. It never fails: unreadable rows
// are skipped and missing sections produce empty results.
func (p *Parser) Parse(doc model.Document) *model.ParsedRecord {
	text := doc.Content

	runInfo := ExtractRunInfo(text)
	mpiTime := ExtractMPITime(text)
	aggTime := ExtractAggregateTime(text)
	msgSize := ExtractMessageSize(text)
	callsites := ExtractCallsites(text)

	classifier := p.Classifier
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	return &model.ParsedRecord{
		Filename:           doc.Filename(),
		Path:               doc.Path,
		InterfaceType:      classifier.Classify(p.Override, runInfo.EnvVarValue()),
		RunInfo:            runInfo,
		MPITimeStats:       mpiTime,
		AggregateTimeStats: aggTime,
		MessageSizeStats:   msgSize,
		CallsiteStats:      callsites,
		Summary:            Summarize(runInfo, mpiTime, aggTime),
		ParsingTimestamp:   now(),
	}
}

// ParseFile reads and parses the report at path. Only reading the file can
// fail.
func (p *Parser) ParseFile(path string) (*model.ParsedRecord, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(doc), nil
}

// ReadDocument loads a report from disk. Content that is not valid UTF-8 is
// decoded as ISO-8859-1, which maps every byte to a rune.
func ReadDocument(path string) (model.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	content, err := decodeContent(raw)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to decode report %s: %w", path, err)
	}
	return model.NewDocument(path, content), nil
}

func decodeContent(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
