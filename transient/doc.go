// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the errors behind a native request's
// error signal into transient categories (timeouts, cancellations,
// refused and reset connections) and everything else.
//
// Use Categorize on the error inside an xhr.TransportError, or call its
// Category method, to decide whether a failed request is worth issuing
// again.
package transient
