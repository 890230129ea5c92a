package ast

type (
	// главные сущности
	UnitID uint32
	DeclID uint32
	StmtID uint32
	ExprID uint32
	TypeID uint32
	// подсущности
	PayloadID uint32
	FieldID   uint32
	ParamID   uint32
)

const (
	NoUnitID    UnitID    = 0
	NoDeclID    DeclID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoTypeID    TypeID    = 0
	NoPayloadID PayloadID = 0
	NoFieldID   FieldID   = 0
	NoParamID   ParamID   = 0
)

func (id UnitID) IsValid() bool    { return id != NoUnitID }
func (id DeclID) IsValid() bool    { return id != NoDeclID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
func (id FieldID) IsValid() bool   { return id != NoFieldID }
func (id ParamID) IsValid() bool   { return id != NoParamID }
