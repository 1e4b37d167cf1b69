package gtest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/cx-miguel-neiva/bench-report/internal/handler"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/cx-miguel-neiva/bench-report/plugins"
	"github.com/rs/zerolog/log"
)

const (
	testcaseTag    = "testcase"
	attrName       = "name"
	attrTime       = "time"
	failureElement = "failure"
	skippedElement = "skipped"
)

var (
	errNonFiniteTime = errors.New("time is not a finite number")
	errMultipleRoots = errors.New("junk after document element")
	errTextOutside   = errors.New("text outside the document element")
)

// ParseReport parses a unit-test XML report and normalizes every testcase.
func ParseReport(item plugins.ISourceItem) ([]model.TestRecord, error) {
	doc, err := ParseDocument(item)
	if err != nil {
		return nil, err
	}

	return Normalize(doc)
}

// ParseDocument parses the item's content as XML.
func ParseDocument(item plugins.ISourceItem) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(item.GetContent()); err != nil {
		return nil, &handler.MalformedDocumentError{Source: item.GetSource(), Err: err}
	}
	if err := checkWellFormed(doc); err != nil {
		return nil, &handler.MalformedDocumentError{Source: item.GetSource(), Err: err}
	}

	return doc, nil
}

// checkWellFormed rejects what etree tolerates but XML does not: more than
// one top-level element, or character data outside the root element.
func checkWellFormed(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
			if roots > 1 {
				return errMultipleRoots
			}
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return errTextOutside
			}
		}
	}
	return nil
}

// Normalize maps each testcase element below the root, in document order, to
// a TestRecord. A document without testcases yields an empty, non-nil slice.
func Normalize(doc *etree.Document) ([]model.TestRecord, error) {
	var testcases []*etree.Element
	if root := doc.Root(); root != nil {
		for _, child := range root.ChildElements() {
			testcases = collectTestcases(child, testcases)
		}
	}
	records := make([]model.TestRecord, 0, len(testcases))

	for i, tc := range testcases {
		rec, err := normalizeTestcase(fmt.Sprintf("testcase[%d]", i), tc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// collectTestcases appends the testcases of the subtree at e in depth-first
// pre-order, which is document order.
func collectTestcases(e *etree.Element, acc []*etree.Element) []*etree.Element {
	if e.Tag == testcaseTag {
		acc = append(acc, e)
	}
	for _, child := range e.ChildElements() {
		acc = collectTestcases(child, acc)
	}
	return acc
}

func normalizeTestcase(id string, tc *etree.Element) (model.TestRecord, error) {
	name := tc.SelectAttr(attrName)
	if name == nil || name.Value == "" {
		return model.TestRecord{}, &handler.MissingFieldError{Record: id, Field: attrName}
	}
	timeAttr := tc.SelectAttr(attrTime)
	if timeAttr == nil {
		return model.TestRecord{}, &handler.MissingFieldError{Record: id, Field: attrTime}
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(timeAttr.Value), 64)
	if err != nil {
		return model.TestRecord{}, &handler.MalformedDocumentError{Record: id, Err: fmt.Errorf("invalid time %q: %w", timeAttr.Value, err)}
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return model.TestRecord{}, &handler.MalformedDocumentError{Record: id, Err: errNonFiniteTime}
	}

	status := model.StatusPassed
	if tc.SelectElement(failureElement) != nil {
		status = model.StatusFailed
	} else if tc.SelectElement(skippedElement) != nil {
		log.Warn().Str("testcase", name.Value).Msg("Skipped testcase is reported as Passed")
	}

	rec, err := model.NewTestRecord(name.Value, seconds, status)
	if err != nil {
		return model.TestRecord{}, &handler.MalformedDocumentError{Record: id, Err: err}
	}

	return rec, nil
}
