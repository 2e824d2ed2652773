package common

const (
	BoolSize    = 1
	Int8Size    = 1
	Int16Size   = 2
	Int32Size   = 4
	Int64Size   = 8
	Float32Size = 4
	Float64Size = 8
	VarcharSize = 16
	DateSize    = 4
	DecimalSize = 16
)
