package model

type DashboardTotals struct {
	Started        int   `json:"started"`
	Completed      int   `json:"completed"`
	Downloads      int   `json:"downloads"`
	DownloadBytes  int64 `json:"download_bytes"`
	QuizzesTaken   int   `json:"quizzes_taken"`
	AveragePercent int   `json:"average_percent"`
}

type Dashboard struct {
	Profile     *Profile             `json:"profile"`
	Progress    []*UserProgress      `json:"progress"`
	Downloads   []*DownloadedContent `json:"downloads"`
	QuizResults []*UserQuizResult    `json:"quiz_results"`
	Totals      DashboardTotals      `json:"totals"`
}
