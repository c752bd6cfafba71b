package entities

import "github.com/bytedance/sonic"

// codec mirrors encoding/json semantics so nested Unmarshalers and the
// presence checks in requireFields see the same bytes either way.
var codec = sonic.ConfigStd
