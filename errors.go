// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package cqf

import "github.com/zeebo/errs"

// ErrModeMismatch is returned by Merge/MergeMany when the filters
// being combined weren't built with the same HashMode; merging hashes
// produced two different ways would silently corrupt the result.
var ErrModeMismatch = errs.New("filters use different hash modes")

// ErrCorrupt is returned by ReadFrom when a serialized filter fails
// its version or shape check.
var ErrCorrupt = errs.New("corrupt or incompatible filter data")
