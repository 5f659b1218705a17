package pages

import (
	"github.com/yigit/trainhub/internal/table"
	"github.com/yigit/trainhub/internal/viewmodel"
)

// ListView renders the filtered items of a list page
func ListView[T, F any](l *viewmodel.List[T, F], columns []table.Column[T], emptyMessage string) table.View {
	return table.Build(columns, l.Items(), table.Options{
		Loading:      l.Loading(),
		EmptyMessage: emptyMessage,
	})
}
