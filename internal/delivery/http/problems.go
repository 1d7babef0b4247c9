package http

import (
	"net/http"

	"go-shortlink/pkg/problemdetails"
)

func invalidRequestProblem(detail string) *problemdetails.ProblemDetail {
	return problemdetails.New(
		http.StatusBadRequest,
		problemdetails.TypeInvalidRequest,
		"Invalid Request",
		detail,
	)
}

func invalidURLProblem(err error) *problemdetails.ProblemDetail {
	return problemdetails.New(
		http.StatusBadRequest,
		problemdetails.TypeInvalidURL,
		"Invalid URL",
		err.Error(),
	)
}

func invalidCodeProblem() *problemdetails.ProblemDetail {
	return problemdetails.New(
		http.StatusBadRequest,
		problemdetails.TypeInvalidCode,
		"Invalid Code",
		"Short code must match [A-Za-z0-9_-] and be at most 20 characters",
	)
}

func notFoundProblem(code string) *problemdetails.ProblemDetail {
	return problemdetails.New(
		http.StatusNotFound,
		problemdetails.TypeNotFound,
		"Not Found",
		"Short URL not found: "+code,
	)
}

func internalProblem(detail string) *problemdetails.ProblemDetail {
	return problemdetails.New(
		http.StatusInternalServerError,
		problemdetails.TypeInternalError,
		"Internal Server Error",
		detail,
	)
}
