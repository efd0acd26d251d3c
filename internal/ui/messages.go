package ui

import "ytkit/internal/progress"

type jobUpdateMsg struct {
	U progress.Update
}

type jobResultMsg struct {
	R progress.Result
}

type batchDoneMsg struct{}
