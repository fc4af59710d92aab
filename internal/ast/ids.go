package ast

type (
	// главные сущности; выражения живут в том же семействе, что и операторы
	DeclID uint32
	StmtID uint32
	// подсущности
	PayloadID uint32
)

const (
	NoDeclID    DeclID    = 0
	NoStmtID    StmtID    = 0
	NoPayloadID PayloadID = 0
)

func (id DeclID) IsValid() bool    { return id != NoDeclID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }

// List is an index+count window into one of the list arenas.
type List struct {
	Start uint32 // 1-based index of the first element, 0 when empty
	Count uint32
}
