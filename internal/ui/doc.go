package ui

// Package ui contains the interactive terminal front end of the application.
// Console handles styled output and cancellable line input, Spinner renders the
// background progress line, and Session drives one download transaction at a
// time: directory, format, URL, preview, confirmation, download and the
// post-download action.
