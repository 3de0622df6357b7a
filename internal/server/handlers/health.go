package handlers

import "net/http"

func Root(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Reddit Sentiment Analysis API",
		"docs":    "/docs",
	})
}

func Health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
