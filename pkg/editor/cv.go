package editor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/client"
	"github.com/nikogura/portfolio-admin/pkg/services"
	"github.com/nikogura/portfolio-admin/pkg/transform"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Alert texts for the CV flow.
const (
	PreviewReadyMessage = "CV analysed. You are previewing the extracted data; nothing has been saved."
	ReplaceDoneMessage  = "Portfolio updated from your CV."
)

// ProcessCV uploads a PDF for extraction. In preview mode the local view is replaced with the extracted
// data and nothing is written. In replace mode the backend stores the data and the whole portfolio is
// reloaded once, dropping any local changes. Edits are refused while this runs.
func (s *Session) ProcessCV(ctx context.Context, file services.CVFile, mode string) (resp api.CVProcessResponse, err error) {
	if mode != api.ModePreview && mode != api.ModeReplace {
		err = errors.Errorf("unknown CV mode %q", mode)
		return resp, err
	}

	if !strings.EqualFold(filepath.Ext(file.Name), ".pdf") {
		s.alerter.Alert(ErrNotPDF.Error())
		err = errors.Wrapf(ErrNotPDF, "%s", file.Name)
		return resp, err
	}

	s.mu.Lock()
	err = s.checkLocked()
	if err != nil {
		s.mu.Unlock()
		return resp, err
	}
	s.cvState = CVProcessing
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.cvState = CVIdle
		s.mu.Unlock()
	}()

	resp, err = mutate(ctx, s, func(ctx context.Context) (api.CVProcessResponse, error) {
		return s.svc.CV.Process(ctx, file, mode)
	})
	if err != nil {
		s.logger.Warn("CV processing failed", zap.String("mode", mode), zap.Error(err))
		s.alerter.Alert(fmt.Sprintf("Failed to process CV: %s", client.Message(err)))
		return resp, err
	}

	if mode == api.ModePreview {
		preview := transform.FromCVExtraction(resp.Data)
		s.mu.Lock()
		s.local = preview
		s.mu.Unlock()
		s.alerter.Alert(PreviewReadyMessage)
		return resp, err
	}

	s.alerter.Alert(ReplaceDoneMessage)

	refetchErr := s.provider.Refetch(ctx)

	// local edits are gone either way; a failed reload leaves the last fetched data on screen
	s.mu.Lock()
	s.local = s.provider.Data()
	s.mu.Unlock()

	if refetchErr != nil {
		err = errors.Wrap(refetchErr, "failed to reload portfolio after CV replace")
		return resp, err
	}

	return resp, err
}
