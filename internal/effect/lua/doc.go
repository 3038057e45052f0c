// Package lua runs designer effects written in Lua.
//
// An effect script runs once when the designer is created. It reaches the
// designer through the global "designable" table:
//
//	designable.on(pattern, fn)         -- subscribe; returns an off function
//	designable.find_node(id)           -- node table or nil
//	designable.selected()              -- ids selected in every workspace
//	designable.select(id, ...)         -- replace the current selection
//	designable.create_node(component, parent_id, props)
//	designable.remove_node(id)
//	designable.current_tree()          -- root id of the current workspace
//	designable.workspaces()            -- workspace ids in order
//	designable.log(msg)
//
// Handlers registered with on receive the event topic and the payload as a
// table keyed by payload field name:
//
//	designable.on("tree.node.created", function(topic, p)
//	    designable.log(p.ComponentName .. " created under " .. p.ParentID)
//	end)
//
// Scripts run with the base, table, string and math libraries only.
// Subscriptions and the Lua state are released when the designer closes.
package lua
