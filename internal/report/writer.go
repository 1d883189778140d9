package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	timestampLayoutConstant              = "20060102_150405"
	reportFileNameTemplateConstant       = "%s_%s.csv"
	csvHeaderFullURLConstant             = "full_url"
	csvHeaderNameConstant                = "name"
	emptyDatasetErrorMessageConstant     = "no records to derive a report header from"
	fileCreationErrorTemplateConstant    = "unable to create report file %s: %w"
	recordWriteErrorTemplateConstant     = "unable to write report file %s: %w"
	currentDirectoryPathConstant         = "."
)

// ErrEmptyDataset signals that a structured report was requested for an
// empty record set; no file is created in that case.
var ErrEmptyDataset = errors.New(emptyDatasetErrorMessageConstant)

// Writer produces timestamped CSV report files. Write failures are reported
// to the caller, which treats them as non-fatal.
type Writer struct {
	directory string
	clock     Clock
}

// NewWriter constructs a Writer targeting the provided directory. An empty
// directory resolves to the working directory and a nil clock to SystemClock.
func NewWriter(directory string, clock Clock) *Writer {
	if len(strings.TrimSpace(directory)) == 0 {
		directory = currentDirectoryPathConstant
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Writer{
		directory: directory,
		clock:     clock,
	}
}

// WriteRepositories writes structured rows with a header row to a
// timestamped file named after the provided prefix and returns the file
// path. An empty record set returns ErrEmptyDataset without creating a file.
func (writer *Writer) WriteRepositories(fileNamePrefix string, rows []RepositoryRow) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyDataset
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{csvHeaderFullURLConstant, csvHeaderNameConstant})
	for _, row := range rows {
		records = append(records, row.CSVRecord())
	}

	return writer.writeRecords(fileNamePrefix, records)
}

// WriteNames writes bare repository names, one per line without a header or
// quoting, to a timestamped file named after the provided prefix and returns
// the file path. An empty name list produces an empty file.
func (writer *Writer) WriteNames(fileNamePrefix string, names []string) (string, error) {
	filePath := writer.reportFilePath(fileNamePrefix)

	reportFile, creationError := os.Create(filePath)
	if creationError != nil {
		return "", fmt.Errorf(fileCreationErrorTemplateConstant, filePath, creationError)
	}
	defer reportFile.Close()

	for _, name := range names {
		if _, writeError := fmt.Fprintln(reportFile, name); writeError != nil {
			return "", fmt.Errorf(recordWriteErrorTemplateConstant, filePath, writeError)
		}
	}

	return filePath, nil
}

func (writer *Writer) reportFilePath(fileNamePrefix string) string {
	fileName := fmt.Sprintf(reportFileNameTemplateConstant, fileNamePrefix, writer.clock.Now().Format(timestampLayoutConstant))
	return filepath.Join(writer.directory, fileName)
}

func (writer *Writer) writeRecords(fileNamePrefix string, records [][]string) (string, error) {
	filePath := writer.reportFilePath(fileNamePrefix)

	reportFile, creationError := os.Create(filePath)
	if creationError != nil {
		return "", fmt.Errorf(fileCreationErrorTemplateConstant, filePath, creationError)
	}
	defer reportFile.Close()

	csvWriter := csv.NewWriter(reportFile)
	for _, record := range records {
		if writeError := csvWriter.Write(record); writeError != nil {
			return "", fmt.Errorf(recordWriteErrorTemplateConstant, filePath, writeError)
		}
	}

	csvWriter.Flush()
	if flushError := csvWriter.Error(); flushError != nil {
		return "", fmt.Errorf(recordWriteErrorTemplateConstant, filePath, flushError)
	}

	return filePath, nil
}
