package mockdata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"socially/models"
)

// Header is the fixed column order of the delimited-text format
var Header = []string{"post_type", "timestamp", "likes", "comments", "shares", "saves", "hashtags", "reach"}

const (
	fieldSeparator  = ","
	recordSeparator = "\n"
)

// Row flattens a post into Header order
func Row(p models.SyntheticPost) []string {
	return []string{
		string(p.PostType),
		p.FormattedTimestamp(),
		strconv.Itoa(p.Likes),
		strconv.Itoa(p.Comments),
		strconv.Itoa(p.Shares),
		strconv.Itoa(p.Saves),
		p.HashtagField(),
		strconv.Itoa(p.Reach),
	}
}

// WriteCSV writes the header line then one line per post. Fields are not
// escaped; no generated value contains the field separator. There is no
// trailing newline.
func WriteCSV(w io.Writer, posts []models.SyntheticPost) error {
	lines := make([]string, 0, len(posts)+1)
	lines = append(lines, strings.Join(Header, fieldSeparator))
	for _, p := range posts {
		lines = append(lines, strings.Join(Row(p), fieldSeparator))
	}
	if _, err := io.WriteString(w, strings.Join(lines, recordSeparator)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteCSVFile atomically replaces path with the rendered posts
func WriteCSVFile(path string, posts []models.SyntheticPost) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, posts); err != nil {
		return err
	}
	return ReplaceFile(path, buf.Bytes())
}

// ReadCSV parses the output of WriteCSV
func ReadCSV(r io.Reader) ([]models.SyntheticPost, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("read csv: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("read csv: unexpected header %q", strings.Join(header, fieldSeparator))
	}

	posts := []models.SyntheticPost{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		post, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// ReadCSVFile loads a file written by WriteCSVFile
func ReadCSVFile(path string) ([]models.SyntheticPost, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func parseRow(record []string) (models.SyntheticPost, error) {
	var p models.SyntheticPost

	p.PostType = models.PostType(record[0])
	if _, ok := MetricTable[p.PostType]; !ok {
		return p, fmt.Errorf("unknown post_type %q", record[0])
	}

	ts, err := time.Parse(time.RFC3339Nano, record[1])
	if err != nil {
		return p, fmt.Errorf("timestamp: %w", err)
	}
	p.Timestamp = ts.UTC()

	ints := []*int{&p.Likes, &p.Comments, &p.Shares, &p.Saves}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(record[2+i]); err != nil {
			return p, fmt.Errorf("%s: %w", Header[2+i], err)
		}
	}

	if record[6] != "" {
		p.Hashtags = strings.Split(record[6], models.HashtagSeparator)
	}

	if p.Reach, err = strconv.Atoi(record[7]); err != nil {
		return p, fmt.Errorf("reach: %w", err)
	}
	return p, nil
}
