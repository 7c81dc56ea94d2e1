package slideshow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ncruces/zenity"
	"go.uber.org/zap"
)

// dialogs shows native dialogs on their own goroutines. Answers come back
// through channels drained by Game.Update.
type dialogs struct {
	title        string
	limitAnswers chan bool
	apiKeys      chan string
	disconnects  chan struct{}
	logger       *zap.Logger
}

func newDialogs(title string, logger *zap.Logger) *dialogs {
	return &dialogs{
		title:        title,
		limitAnswers: make(chan bool, 1),
		apiKeys:      make(chan string, 1),
		disconnects:  make(chan struct{}, 1),
		logger:       logger.Named("dialogs"),
	}
}

// PromptLimit asks whether to stop after the completion limit. A dialog that
// cannot be shown counts as "continue".
func (d *dialogs) PromptLimit(completed, limit int) {
	go func() {
		err := zenity.Question(
			fmt.Sprintf("You have completed the limit (%d of %d). Do you want to stop?", completed, limit),
			zenity.Title(d.title),
			zenity.QuestionIcon,
			zenity.OKLabel("Stop"),
			zenity.CancelLabel("Continue"),
		)
		stop := err == nil
		if err != nil && !errors.Is(err, zenity.ErrCanceled) {
			d.logger.Warn("limit dialog failed", zap.Error(err))
		}
		d.limitAnswers <- stop
	}()
}

// notify shows a desktop notification.
func (d *dialogs) notify(message string) {
	go func() {
		if err := zenity.Notify(message, zenity.Title(d.title), zenity.InfoIcon); err != nil {
			d.logger.Debug("notification failed", zap.Error(err))
		}
	}()
}

// askAPIKey asks for a Toggl API token. Cancelling sends nothing.
func (d *dialogs) askAPIKey() {
	go func() {
		key, err := zenity.Entry(
			"Toggl API token (Profile settings, API Token):",
			zenity.Title(d.title),
			zenity.HideText(),
		)
		if err != nil {
			if !errors.Is(err, zenity.ErrCanceled) {
				d.logger.Warn("api key dialog failed", zap.Error(err))
			}
			return
		}
		if key = strings.TrimSpace(key); key != "" {
			d.apiKeys <- key
		}
	}()
}

// confirmDisconnect asks whether to forget the Toggl credential.
func (d *dialogs) confirmDisconnect() {
	go func() {
		err := zenity.Question(
			"Stop tracking practice time in Toggl?",
			zenity.Title(d.title),
			zenity.OKLabel("Disconnect"),
			zenity.CancelLabel("Keep"),
		)
		if err == nil {
			d.disconnects <- struct{}{}
		}
	}()
}

// ChooseDirectory asks for an image directory. It blocks and is meant for
// command-line use.
func ChooseDirectory(title string) (string, error) {
	dir, err := zenity.SelectFile(zenity.Title(title), zenity.Directory())
	if err != nil {
		return "", err
	}
	return dir, nil
}
