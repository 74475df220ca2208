package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clarsbyte/onshape-mcp/feature"
	"github.com/clarsbyte/onshape-mcp/onshape"
)

// Hints appended to remote rejections, naming the most common cause of a
// 4xx for each tool family.
const (
	hintParameters = "Check that the parameters are correct."
	hintSketchID   = "Check that the sketch feature ID is valid and parameters are correct."
	hintEdgeIDs    = "Check that the edge IDs are valid and parameters are correct."
	hintStudioIDs  = "Check that the document/workspace/element IDs are valid."
	hintExpression = "Check the variable expression format (e.g., '0.75 in')."
)

// renderError formats a tool failure. Remote rejections carry the HTTP
// status plus the family hint; local validation failures are already
// self-describing; anything else gets a generic retry suffix.
func renderError(action string, err error, hint string) string {
	var apiErr *onshape.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Error %s: API returned %d. %s", action, apiErr.Status, hint)
	}
	switch feature.ErrorCode(err) {
	case feature.CodeInvalidGeometry,
		feature.CodeInvalidEnumValue,
		feature.CodeIncompleteDescriptor,
		feature.CodeInvalidChainSpec:
		return fmt.Sprintf("Error %s: %v.", action, err)
	}
	return fmt.Sprintf("Error %s: %v\n\nPlease check the parameters and try again.", action, err)
}

// renderChainError adds the aborted step and stage to the message, plus
// the IDs of features that were created before the abort. Those features
// exist remotely; the caller has to know about them to clean up.
func renderChainError(action string, err error, hint string) string {
	var chainErr *feature.ChainError
	if !errors.As(err, &chainErr) {
		return renderError(action, err, hint)
	}
	where := fmt.Sprintf("%s at step %d (%s)", action, chainErr.Step+1, chainErr.Stage)
	msg := renderError(where, chainErr.Err, hint)
	if len(chainErr.Created) > 0 {
		msg += "\nPartially created feature IDs: " + strings.Join(chainErr.Created, ", ")
	}
	return msg
}
