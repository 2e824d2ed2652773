package hostudf

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Describe renders an invocation request as a tree, for logs and the
// tester CLI.
func Describe(udf HostUDF, bundle *InputBundle) string {
	tree := treeprint.NewWithRoot(udf.Name())
	req := tree.AddBranch("required")
	for _, kind := range udf.RequiredKinds().Ordered() {
		req.AddNode(kind.String())
	}
	got := tree.AddBranch("bundle")
	for _, kind := range bundle.Kinds().Ordered() {
		switch kind {
		case KindValues:
			col := bundle.Values()
			got.AddMetaBranch(kind.String(),
				fmt.Sprintf("%s size=%d nulls=%d", col.Typ(), col.Count(), col.NullCount()))
		case KindGroupedValues:
			col := bundle.GroupedValues()
			got.AddMetaBranch(kind.String(),
				fmt.Sprintf("%s size=%d nulls=%d", col.Typ(), col.Count(), col.NullCount()))
		case KindOutputType:
			got.AddMetaBranch(kind.String(), bundle.OutputType().String())
		case KindInitValue:
			init := bundle.InitValue()
			if init == nil {
				got.AddMetaBranch(kind.String(), "absent")
			} else {
				got.AddMetaBranch(kind.String(), init.String())
			}
		case KindNullPolicy:
			got.AddMetaBranch(kind.String(), bundle.NullPolicy().String())
		case KindOffsets:
			got.AddMetaBranch(kind.String(), fmt.Sprintf("n=%d", len(bundle.Offsets())))
		case KindGroupLabels:
			got.AddMetaBranch(kind.String(), fmt.Sprintf("n=%d", len(bundle.GroupLabels())))
		default:
			panic("usp")
		}
	}
	return tree.String()
}
