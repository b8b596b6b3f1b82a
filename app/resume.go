package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/journal"
	"github.com/sesh-cli/sesh/stats"
)

// maxResumeChoices caps the picker table at the most recent sessions.
const maxResumeChoices = 10

var errNoEndedSessions = errors.New(
	"no ended sessions to resume: please start a new session",
)

// selectEndedSession prompts the user to pick a session to resume
// from a table of the most recently ended ones.
func selectEndedSession(j *journal.Journal) (string, error) {
	var ended []models.Session

	for _, sess := range j.Sessions() {
		if sess.Ended() {
			ended = append(ended, sess)
		}
	}

	if len(ended) == 0 {
		return "", errNoEndedSessions
	}

	if len(ended) > maxResumeChoices {
		ended = ended[len(ended)-maxResumeChoices:]
	}

	stats.List(os.Stdout, ended)

	reader := bufio.NewReader(os.Stdin)

	fmt.Fprint(os.Stdout, "Type a number and press ENTER: ")

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	input = strings.TrimSpace(input)

	if input == "" {
		os.Exit(0)
	}

	num, err := strconv.Atoi(input)
	if err != nil {
		return "", err
	}

	index := num - 1
	if index < 0 || index >= len(ended) {
		return "", fmt.Errorf("%d is not associated with a session", num)
	}

	return ended[index].ID, nil
}
