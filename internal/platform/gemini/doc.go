// Package gemini implements the generation.Recommender interface using
// Google's Gemini API. It turns a completed skill assessment into structured
// job and course recommendations, with retry logic for transient API failures.
package gemini
