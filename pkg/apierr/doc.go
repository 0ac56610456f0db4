// Package apierr classifies Flowpay API failures into a stable, machine-readable
// error taxonomy.
//
// Every non-success outcome of an API call is represented by a single *Error
// value discriminated by its Code field. Callers branch on the code rather than
// on a type hierarchy:
//
//	payment, err := client.Payments.Get(ctx, id)
//	if err != nil {
//	    var apiErr *apierr.Error
//	    if errors.As(err, &apiErr) {
//	        switch apiErr.Code {
//	        case apierr.CodeRateLimit:
//	            // back off and retry later
//	        case apierr.CodeAuthentication:
//	            // rotate the API key
//	        }
//	    }
//	}
//
// Classification is a pure function of the HTTP status code; the raw upstream
// response body is preserved on the error for debugging.
package apierr
