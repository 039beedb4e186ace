package app

// Message types live in github.com/sadopc/schemasketch/internal/msg.
// This file re-exports them for convenience within the app package.

import appmsg "github.com/sadopc/schemasketch/internal/msg"

type (
	Pane              = appmsg.Pane
	AsideTab          = appmsg.AsideTab
	FocusMsg          = appmsg.FocusMsg
	SwitchTabMsg      = appmsg.SwitchTabMsg
	OpenTableFormMsg  = appmsg.OpenTableFormMsg
	TableSubmittedMsg = appmsg.TableSubmittedMsg
	CloseTableFormMsg = appmsg.CloseTableFormMsg
	ConfirmDeleteMsg  = appmsg.ConfirmDeleteMsg
	DeleteTableMsg    = appmsg.DeleteTableMsg
	StatusMsg         = appmsg.StatusMsg
	ExportRequestMsg  = appmsg.ExportRequestMsg
	ExportCompleteMsg = appmsg.ExportCompleteMsg
	ExportErrMsg      = appmsg.ExportErrMsg
)

const (
	PaneAside   = appmsg.PaneAside
	PaneDiagram = appmsg.PaneDiagram

	TabBlocks = appmsg.TabBlocks
	TabCode   = appmsg.TabCode
)
