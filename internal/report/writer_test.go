package report_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/scangap/internal/report"
)

const (
	writerSubtestNameTemplateConstant = "%d_%s"
	fixedTimestampSuffixConstant      = "20240131_124545"
	foundPrefixConstant               = "output-found"
	notFoundPrefixConstant            = "output-notfound"
)

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

func newFixedClock(testInstance *testing.T) fixedClock {
	instant, parseError := time.Parse("20060102_150405", fixedTimestampSuffixConstant)
	require.NoError(testInstance, parseError)
	return fixedClock{instant: instant}
}

func TestWriteRepositories(testInstance *testing.T) {
	testCases := []struct {
		name            string
		rows            []report.RepositoryRow
		expectedContent string
		expectedError   error
	}{
		{
			name: "structured_rows_with_header",
			rows: []report.RepositoryRow{
				{FullURL: "https://github.com/acme/service", Name: "service"},
				{FullURL: "https://github.com/acme/library", Name: "library"},
			},
			expectedContent: "full_url,name\nhttps://github.com/acme/service,service\nhttps://github.com/acme/library,library\n",
			expectedError:   nil,
		},
		{
			name:          "empty_dataset_creates_no_file",
			rows:          nil,
			expectedError: report.ErrEmptyDataset,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(writerSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outputDirectory := testInstance.TempDir()
			writer := report.NewWriter(outputDirectory, newFixedClock(testInstance))

			writtenPath, writeError := writer.WriteRepositories(foundPrefixConstant, testCase.rows)

			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, writeError, testCase.expectedError)
				directoryEntries, readDirectoryError := os.ReadDir(outputDirectory)
				require.NoError(testInstance, readDirectoryError)
				require.Empty(testInstance, directoryEntries)
				return
			}

			require.NoError(testInstance, writeError)
			expectedPath := filepath.Join(outputDirectory, fmt.Sprintf("%s_%s.csv", foundPrefixConstant, fixedTimestampSuffixConstant))
			require.Equal(testInstance, expectedPath, writtenPath)

			contentBytes, readError := os.ReadFile(writtenPath)
			require.NoError(testInstance, readError)
			require.Equal(testInstance, testCase.expectedContent, string(contentBytes))
		})
	}
}

func TestWriteNames(testInstance *testing.T) {
	testCases := []struct {
		name            string
		repositoryNames []string
		expectedContent string
	}{
		{
			name:            "bare_names_without_header",
			repositoryNames: []string{"service", "library"},
			expectedContent: "service\nlibrary\n",
		},
		{
			name:            "empty_name_list_creates_empty_file",
			repositoryNames: nil,
			expectedContent: "",
		},
		{
			name:            "names_are_written_without_quoting",
			repositoryNames: []string{"service,canary", "library"},
			expectedContent: "service,canary\nlibrary\n",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(writerSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outputDirectory := testInstance.TempDir()
			writer := report.NewWriter(outputDirectory, newFixedClock(testInstance))

			writtenPath, writeError := writer.WriteNames(notFoundPrefixConstant, testCase.repositoryNames)
			require.NoError(testInstance, writeError)

			expectedPath := filepath.Join(outputDirectory, fmt.Sprintf("%s_%s.csv", notFoundPrefixConstant, fixedTimestampSuffixConstant))
			require.Equal(testInstance, expectedPath, writtenPath)

			contentBytes, readError := os.ReadFile(writtenPath)
			require.NoError(testInstance, readError)
			require.Equal(testInstance, testCase.expectedContent, string(contentBytes))
		})
	}
}

func TestWriteRepositoriesFailureWhenDirectoryMissing(testInstance *testing.T) {
	missingDirectory := filepath.Join(testInstance.TempDir(), "missing")
	writer := report.NewWriter(missingDirectory, newFixedClock(testInstance))

	_, writeError := writer.WriteRepositories(foundPrefixConstant, []report.RepositoryRow{{Name: "service"}})
	require.Error(testInstance, writeError)
}
