package coverage

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/scangap/internal/githubrepos"
	"github.com/temirov/scangap/internal/reconcile"
	"github.com/temirov/scangap/internal/report"
)

const (
	foundReportPrefixConstant            = "output-found"
	notFoundReportPrefixConstant         = "output-notfound"
	coverageSummaryTemplateConstant      = "Percentage of GitHub repos covered: %.2f%%\n"
	reportWrittenTemplateConstant        = "Data has been written to %s\n"
	reportFailureTemplateConstant        = "An error occurred while writing the %s report: %v\n"
	coverageComputedInfoMessageConstant  = "scan coverage computed"
	logFieldInventoryCountConstant       = "inventory_count"
	logFieldMatchCountConstant           = "match_count"
	logFieldNonMatchCountConstant        = "non_match_count"
	logFieldCoveragePercentageConstant   = "coverage_percentage"
	logFieldMatchModeConstant            = "match_mode"
	reportWriteFailedWarnMessageConstant = "report write failed"
	logFieldReportPrefixConstant         = "report_prefix"
)

// Service coordinates inventory fetching, registry authentication,
// reconciliation, and report writing. Execution is strictly sequential;
// upstream fetch failures abort the run before any file is written, while
// report-write failures are logged and skipped.
type Service struct {
	repositoryLister RepositoryLister
	tokenExchanger   TokenExchanger
	projectLister    ProjectLister
	taggedLister     TaggedRepositoryLister
	reportWriter     ReportWriter
	outputWriter     io.Writer
	errorWriter      io.Writer
	logger           *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(repositoryLister RepositoryLister, tokenExchanger TokenExchanger, projectLister ProjectLister, taggedLister TaggedRepositoryLister, reportWriter ReportWriter, outputWriter io.Writer, errorWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repositoryLister: repositoryLister,
		tokenExchanger:   tokenExchanger,
		projectLister:    projectLister,
		taggedLister:     taggedLister,
		reportWriter:     reportWriter,
		outputWriter:     outputWriter,
		errorWriter:      errorWriter,
		logger:           logger,
	}
}

// Run executes the coverage pipeline according to the provided options.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	inventory, inventoryError := service.repositoryLister.ListRepositories(executionContext, options.UserOrOrganization, options.GitHubToken, options.MaximumProjectCount)
	if inventoryError != nil {
		return inventoryError
	}

	accessToken, exchangeError := service.tokenExchanger.ExchangeRefreshToken(executionContext, options.CheckmarxRefreshToken)
	if exchangeError != nil {
		return exchangeError
	}

	registryNames, registryError := service.fetchRegistryNames(executionContext, options.Mode, accessToken)
	if registryError != nil {
		return registryError
	}

	partition := reconcile.PartitionByName(inventory, registryNames)

	coveragePercentage, coverageError := reconcile.CoveragePercentage(len(partition.Matches), len(inventory))
	if coverageError != nil {
		return coverageError
	}

	service.logger.Info(
		coverageComputedInfoMessageConstant,
		zap.String(logFieldMatchModeConstant, string(options.Mode)),
		zap.Int(logFieldInventoryCountConstant, len(inventory)),
		zap.Int(logFieldMatchCountConstant, len(partition.Matches)),
		zap.Int(logFieldNonMatchCountConstant, len(partition.NonMatches)),
		zap.Float64(logFieldCoveragePercentageConstant, coveragePercentage),
	)

	fmt.Fprintf(service.outputWriter, coverageSummaryTemplateConstant, coveragePercentage)

	service.writeReport(options.Mode, foundReportPrefixConstant, partition.Matches)
	service.writeReport(options.Mode, notFoundReportPrefixConstant, partition.NonMatches)

	return nil
}

func (service *Service) fetchRegistryNames(executionContext context.Context, mode MatchMode, accessToken string) ([]string, error) {
	if mode == MatchModeRepositoryTag {
		return service.taggedLister.ListTaggedRepositories(executionContext, accessToken)
	}

	projects, projectError := service.projectLister.ListProjects(executionContext, accessToken)
	if projectError != nil {
		return nil, projectError
	}

	projectNames := make([]string, 0, len(projects))
	for _, project := range projects {
		projectNames = append(projectNames, project.Name)
	}
	return projectNames, nil
}

// writeReport persists one partition half; failures are logged and do not
// abort the run.
func (service *Service) writeReport(mode MatchMode, fileNamePrefix string, repositories []githubrepos.Repository) {
	var writtenPath string
	var writeError error

	switch mode {
	case MatchModeRepositoryTag:
		names := make([]string, 0, len(repositories))
		for _, repository := range repositories {
			names = append(names, repository.Name)
		}
		writtenPath, writeError = service.reportWriter.WriteNames(fileNamePrefix, names)
	default:
		rows := make([]report.RepositoryRow, 0, len(repositories))
		for _, repository := range repositories {
			rows = append(rows, report.RepositoryRow{FullURL: repository.HTMLURL, Name: repository.Name})
		}
		writtenPath, writeError = service.reportWriter.WriteRepositories(fileNamePrefix, rows)
	}

	if writeError != nil {
		fmt.Fprintf(service.errorWriter, reportFailureTemplateConstant, fileNamePrefix, writeError)
		service.logger.Warn(
			reportWriteFailedWarnMessageConstant,
			zap.String(logFieldReportPrefixConstant, fileNamePrefix),
			zap.Error(writeError),
		)
		return
	}

	fmt.Fprintf(service.outputWriter, reportWrittenTemplateConstant, writtenPath)
}
