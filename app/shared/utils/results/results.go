// Package results carries the success-or-business-failure shape service
// operations return. A Failure is a domain outcome (published as a failure
// event); a returned error is an infrastructure fault (retried by the
// router).
package results

// OperationResult holds either a success or a failure payload. Both nil is a
// valid "nothing to report" result.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult wraps a business-failure payload.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }
