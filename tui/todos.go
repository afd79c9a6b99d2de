package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/co191194/todo-cli/api"
)

// todoAction tells the root model what the list screen wants done.
type todoAction int

const (
	todoActionNone todoAction = iota
	todoActionReload
	todoActionCreate // draft title in draftTitle()
	todoActionToggle // selected item cycles to the next status
	todoActionDelete
	todoActionLogout
)

// todoList is the home screen: the fetched page of todos plus a one-line
// draft input for new items.
type todoList struct {
	items  []api.Todo
	total  int64
	cursor int

	adding bool
	draft  textinput.Model
}

func newTodoList() todoList {
	draft := textinput.New()
	draft.Placeholder = "what needs doing?"
	draft.CharLimit = 255
	return todoList{draft: draft}
}

// setItems replaces the list contents, keeping the cursor in range.
func (l todoList) setItems(list *api.TodoListResponse) todoList {
	l.items = list.Items
	l.total = list.Total
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	return l
}

// selected returns the todo under the cursor, or nil for an empty list.
func (l todoList) selected() *api.Todo {
	if len(l.items) == 0 {
		return nil
	}
	return &l.items[l.cursor]
}

// draftTitle returns the trimmed title of the add-item input.
func (l todoList) draftTitle() string {
	return strings.TrimSpace(l.draft.Value())
}

// Update handles list navigation and edit keys, reporting the requested
// action to the root model.
func (l todoList) Update(msg tea.Msg) (todoList, tea.Cmd, todoAction) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if l.adding {
			var cmd tea.Cmd
			l.draft, cmd = l.draft.Update(msg)
			return l, cmd, todoActionNone
		}
		return l, nil, todoActionNone
	}

	if l.adding {
		switch key.String() {
		case "esc":
			l.adding = false
			l.draft.SetValue("")
			l.draft.Blur()
			return l, nil, todoActionNone
		case "enter":
			if l.draftTitle() == "" {
				return l, nil, todoActionNone
			}
			l.adding = false
			l.draft.Blur()
			return l, nil, todoActionCreate
		default:
			var cmd tea.Cmd
			l.draft, cmd = l.draft.Update(msg)
			return l, cmd, todoActionNone
		}
	}

	switch key.String() {
	case "a":
		l.adding = true
		return l, l.draft.Focus(), todoActionNone
	case "j", "down":
		if l.cursor < len(l.items)-1 {
			l.cursor++
		}
		return l, nil, todoActionNone
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
		return l, nil, todoActionNone
	case "enter", " ":
		if l.selected() != nil {
			return l, nil, todoActionToggle
		}
	case "d":
		if l.selected() != nil {
			return l, nil, todoActionDelete
		}
	case "r":
		return l, nil, todoActionReload
	case "ctrl+l":
		return l, nil, todoActionLogout
	}
	return l, nil, todoActionNone
}

func (l todoList) View() string {
	var b strings.Builder

	if len(l.items) == 0 && !l.adding {
		b.WriteString(styleDim.Render("No todos yet. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, t := range l.items {
		marker := "  "
		if i == l.cursor && !l.adding {
			marker = styleCursor.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(statusBadge(t.Status))
		b.WriteString(" ")
		b.WriteString(priorityBadge(t.Priority))
		b.WriteString(" ")
		if t.Status == api.StatusCompleted {
			b.WriteString(styleDim.Render(t.Title))
		} else {
			b.WriteString(t.Title)
		}
		if t.DueDate != nil {
			b.WriteString(styleDim.Render("  due " + t.DueDate.Local().Format("2006-01-02")))
		}
		b.WriteString("\n")
	}

	if l.adding {
		b.WriteString("\n")
		b.WriteString(styleBold.Render("New todo"))
		b.WriteString("\n")
		b.WriteString(l.draft.View())
		b.WriteString("\n")
		b.WriteString(styleDim.Render("enter: add • esc: cancel"))
		return b.String()
	}

	if l.total > int64(len(l.items)) {
		b.WriteString(styleDim.Render(fmt.Sprintf("%d of %d shown", len(l.items), l.total)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render(
		"a: add • enter/space: cycle status • d: delete • r: reload • ctrl+l: log out • ctrl+c: quit",
	))
	return b.String()
}
