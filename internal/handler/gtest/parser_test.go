package gtest

import (
	"testing"

	"github.com/cx-miguel-neiva/bench-report/internal/handler"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/cx-miguel-neiva/bench-report/plugins"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(content string) *plugins.Item {
	return &plugins.Item{Content: []byte(content), ID: "test_results.xml", Source: "test_results.xml"}
}

const gtestReport = `<?xml version="1.0" encoding="UTF-8"?>
<testsuites tests="4" failures="1" name="AllTests">
  <testsuite name="MathTest" tests="2">
    <testcase name="T1" status="run" result="completed" time="0.002" classname="MathTest"/>
    <testcase name="T2" status="run" result="completed" time="0.001" classname="MathTest">
      <failure message="Expected equality" type=""><![CDATA[test.cpp:10
Expected equality of these values]]></failure>
    </testcase>
  </testsuite>
  <testsuite name="StringTest" tests="2">
    <testcase name="Concat" time="1.5" classname="StringTest"/>
    <testcase name="Empty" time="0" classname="StringTest">
      <failure/>
    </testcase>
  </testsuite>
</testsuites>`

func TestParseReport(t *testing.T) {
	records, err := ParseReport(newItem(gtestReport))
	require.NoError(t, err)

	want := []model.TestRecord{
		{Name: "T1", DurationMs: 2.0, Status: model.StatusPassed},
		{Name: "T2", DurationMs: 1.0, Status: model.StatusFailed},
		{Name: "Concat", DurationMs: 1500, Status: model.StatusPassed},
		{Name: "Empty", DurationMs: 0, Status: model.StatusFailed},
	}
	assert.Equal(t, want, records)
}

func TestNormalize_RowFormatting(t *testing.T) {
	records, err := ParseReport(newItem(gtestReport))
	require.NoError(t, err)

	assert.Equal(t, "2.0", model.FormatFloat(records[0].DurationMs))
	assert.Equal(t, "1.0", model.FormatFloat(records[1].DurationMs))
}

func TestNormalize_CountMatchesTestcases(t *testing.T) {
	doc, err := ParseDocument(newItem(gtestReport))
	require.NoError(t, err)

	records, err := Normalize(doc)
	require.NoError(t, err)
	assert.Len(t, records, len(doc.FindElements("//testcase")))
	assert.Len(t, records, 4)
}

func TestNormalize_NestedSuitesKeepDocumentOrder(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name: "inner suite before sibling testcase",
			content: `<testsuites>
  <testsuite name="Outer">
    <testsuite name="Inner">
      <testcase name="first" time="0.1"/>
    </testsuite>
    <testcase name="second" time="0.2"><failure/></testcase>
  </testsuite>
</testsuites>`,
			want: []string{"first", "second"},
		},
		{
			name: "mixed depths",
			content: `<testsuites>
  <testsuite name="A">
    <testsuite name="B">
      <testsuite name="C"><testcase name="1" time="0"/></testsuite>
      <testcase name="2" time="0"/>
    </testsuite>
    <testcase name="3" time="0"/>
  </testsuite>
  <testcase name="4" time="0"/>
</testsuites>`,
			want: []string{"1", "2", "3", "4"},
		},
		{
			name:    "testcase nested in testcase",
			content: `<r><testcase name="outer" time="0"><testcase name="inner" time="0"/></testcase></r>`,
			want:    []string{"outer", "inner"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseReport(newItem(tt.content))
			require.NoError(t, err)

			var names []string
			for _, r := range records {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestNormalize_DuplicateNamesKept(t *testing.T) {
	records, err := ParseReport(newItem(`<r><testcase name="A" time="0.1"/><testcase name="A" time="0.2"/></r>`))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0.1*1000, records[0].DurationMs)
	assert.Equal(t, 0.2*1000, records[1].DurationMs)
}

func TestNormalize_Empty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no testcases", content: `<testsuites name="AllTests"></testsuites>`},
		{name: "no root", content: ``},
		{name: "declaration only", content: `<?xml version="1.0"?>`},
		{name: "root is a testcase", content: `<testcase name="only" time="0.5"/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseReport(newItem(tt.content))
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestNormalize_MissingField(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantRecord string
		wantField  string
	}{
		{
			name:       "missing name",
			content:    `<r><testcase time="0.1"/></r>`,
			wantRecord: "testcase[0]",
			wantField:  "name",
		},
		{
			name:       "empty name",
			content:    `<r><testcase name="" time="0.1"/></r>`,
			wantRecord: "testcase[0]",
			wantField:  "name",
		},
		{
			name:       "missing time on second case",
			content:    `<r><testcase name="A" time="0.1"/><testcase name="B"/></r>`,
			wantRecord: "testcase[1]",
			wantField:  "time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseReport(newItem(tt.content))
			assert.Nil(t, records)

			var missing *handler.MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantRecord, missing.Record)
			assert.Equal(t, tt.wantField, missing.Field)
		})
	}
}

func TestNormalize_InvalidTime(t *testing.T) {
	for _, value := range []string{"fast", "-1", "NaN"} {
		t.Run(value, func(t *testing.T) {
			_, err := ParseReport(newItem(`<r><testcase name="A" time="` + value + `"/></r>`))

			var malformed *handler.MalformedDocumentError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, "testcase[0]", malformed.Record)
		})
	}
}

func TestNormalize_SkippedIsPassed(t *testing.T) {
	records, err := ParseReport(newItem(`<r><testcase name="S" time="0"><skipped message="later"/></testcase></r>`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.StatusPassed, records[0].Status)
}

func TestParseDocument_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unclosed element", content: `<testsuites><testcase name="T1" time="0.1">`},
		{name: "text only", content: `hello`},
		{name: "text after root", content: `<testsuites/>trailing`},
		{name: "two roots", content: `<a><testcase name="a" time="0"/></a><b><testcase name="b" time="0"/></b>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument(newItem(tt.content))
			assert.Nil(t, doc)

			var malformed *handler.MalformedDocumentError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, "test_results.xml", malformed.Source)
			assert.Empty(t, malformed.Record)

			records, err := ParseReport(newItem(tt.content))
			assert.Nil(t, records)
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestParseDocument_WhitespaceAroundRoot(t *testing.T) {
	content := "<?xml version=\"1.0\"?>\n<!-- generated -->\n<testsuites><testcase name=\"T1\" time=\"0\"/></testsuites>\n\n"

	records, err := ParseReport(newItem(content))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
