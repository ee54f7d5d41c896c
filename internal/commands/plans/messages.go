package planscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	stampDirectoryMessageType = "planstatus.plans.stamp_directory"
	previewPlanMessageType    = "planstatus.plans.preview_plan"

	dateLayout = "2006-01-02"
)

// StampDirectoryCommand stamps every eligible plan under Directory that does
// not already carry a status header.
type StampDirectoryCommand struct {
	// Directory is the plans directory (relative or absolute).
	Directory string `json:"directory"`
	// Cutoff excludes plans dated on or after it. Empty falls back to the configured cutoff.
	Cutoff string `json:"cutoff,omitempty"`
	// DryRun computes headers without writing any file.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (StampDirectoryCommand) Type() string { return stampDirectoryMessageType }

// Validate ensures the directory is present and the cutoff is a calendar date.
func (cmd StampDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.By(requiredText("planstatus.plans.stamp_directory.directory_required", "directory is required"))),
		validation.Field(&cmd.Cutoff, validation.Date(dateLayout).Error("cutoff must be a YYYY-MM-DD date")),
	)
}

// PreviewPlanCommand renders the stamped form of a single plan without
// writing it.
type PreviewPlanCommand struct {
	Directory string `json:"directory"`
	Cutoff    string `json:"cutoff,omitempty"`
	// File is the plan filename. Any leading directories are ignored.
	File string `json:"file"`
	// HTML additionally renders the stamped markdown to HTML.
	HTML bool `json:"html,omitempty"`
}

// Type implements command.Message.
func (PreviewPlanCommand) Type() string { return previewPlanMessageType }

// Validate ensures directory and file are present.
func (cmd PreviewPlanCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.By(requiredText("planstatus.plans.preview_plan.directory_required", "directory is required"))),
		validation.Field(&cmd.Cutoff, validation.Date(dateLayout).Error("cutoff must be a YYYY-MM-DD date")),
		validation.Field(&cmd.File, validation.By(requiredText("planstatus.plans.preview_plan.file_required", "file is required"))),
	)
}

func requiredText(code, message string) validation.RuleFunc {
	return func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
