// Package services holds the caption search use cases: ingesting caption
// files into the index, querying it, watching the caption directory and
// answering per-video questions.
//
// Services depend only on the domain and on driven ports, so every
// collaborator (SQLite, yt-dlp, the YouTube API) can be replaced in tests.
package services
