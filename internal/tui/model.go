// Package tui 基于 bubbletea 的终端聊天界面。
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/emoji-bot/backend/internal/model/bot"
	"github.com/zhouzirui/emoji-bot/backend/internal/model/chat"
	chatService "github.com/zhouzirui/emoji-bot/backend/internal/service/chat"
)

// Responder 终端界面依赖的聊天服务能力
type Responder interface {
	Available() bool
	Respond(ctx context.Context, input string) chat.Reply
}

type replyMsg chat.Reply

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	label    lipgloss.Style
	reply    lipgloss.Style
	warning  lipgloss.Style
	spinner  lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		label:    lipgloss.NewStyle().Bold(true),
		reply:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		spinner:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		help:     lipgloss.NewStyle().Faint(true),
	}
}

// Model 一个终端会话的 bubbletea 模型，只显示最近一次回复。
type Model struct {
	ctx       context.Context
	responder Responder
	profile   bot.Profile
	styles    styles

	input   textinput.Model
	spinner spinner.Model

	busy      bool
	available bool
	last      *chat.Reply
}

// New 创建终端模型，ctx 约束其发起的每一轮对话。
func New(ctx context.Context, responder Responder, profile bot.Profile) Model {
	st := defaultStyles()

	ti := textinput.New()
	ti.Placeholder = "😊 say something (Enter to send, Esc to quit)"
	ti.CharLimit = 4096
	ti.Width = 72
	ti.Focus()

	available := responder.Available()
	if !available {
		ti.Blur()
	}

	return Model{
		ctx:       ctx,
		responder: responder,
		profile:   profile,
		styles:    st,
		input:     ti,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(st.spinner)),
		available: available,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy || !m.available {
				return m, nil
			}
			return m.submit()
		}

		if m.busy || !m.available {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case replyMsg:
		reply := chat.Reply(msg)
		m.busy = false
		m.last = &reply
		return m, nil
	}

	return m, nil
}

// submit 发起一轮对话，输入框内容保留，与网页行为一致。
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.busy = true
	input := m.input.Value()
	ctx, responder := m.ctx, m.responder

	ask := func() tea.Msg {
		return replyMsg(responder.Respond(ctx, input))
	}
	return m, tea.Batch(ask, m.spinner.Tick)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render(m.profile.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.subtitle.Render(m.profile.Subtitle))
	b.WriteString("\n\n")

	if !m.available {
		b.WriteString(m.styles.warning.Render(chatService.UnavailableMessage))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.label.Render(m.profile.InputLabel))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " " + m.profile.ProgressText)
	case m.last != nil:
		b.WriteString(m.styles.reply.Render("Bot: " + m.last.Text))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.help.Render("enter: send • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// Busy 是否有正在进行的对话
func (m Model) Busy() bool { return m.busy }

// Last 返回最近一次回复
func (m Model) Last() (chat.Reply, bool) {
	if m.last == nil {
		return chat.Reply{}, false
	}
	return *m.last, true
}

// Run 启动交互程序，直到用户退出。
func Run(ctx context.Context, responder Responder, profile bot.Profile) error {
	_, err := tea.NewProgram(New(ctx, responder, profile), tea.WithContext(ctx)).Run()
	return err
}
