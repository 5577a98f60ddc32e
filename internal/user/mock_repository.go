package user

// MockRepository is an in-memory Repository used by the service tests.
type MockRepository struct {
	Users []*User
	Err   error
}

func (m *MockRepository) createUser(newUser *User) error {
	if m.Err != nil {
		return m.Err
	}
	m.Users = append(m.Users, newUser)
	return nil
}

func (m *MockRepository) getUserByEmail(email string) (*User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockRepository) getUserByUsername(username string) (*User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockRepository) userExistsByUsernameOrEmail(username, email string) (*User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockRepository) getUserByID(id string) (*User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockRepository) updateUsernameAndEmail(userID, username, email string) error {
	if m.Err != nil {
		return m.Err
	}
	for _, u := range m.Users {
		if u.ID == userID {
			u.Username = username
			u.Email = email
			return nil
		}
	}
	return ErrUserNotFound
}

func (m *MockRepository) updateAvatarPath(userID, avatarPath string) error {
	if m.Err != nil {
		return m.Err
	}
	for _, u := range m.Users {
		if u.ID == userID {
			u.AvatarPath = avatarPath
			return nil
		}
	}
	return ErrUserNotFound
}

func (m *MockRepository) updateUserPasswordAndHashToken(userID, newPasswordHash, newHashToken string) error {
	if m.Err != nil {
		return m.Err
	}
	for _, u := range m.Users {
		if u.ID == userID {
			u.PasswordHash = newPasswordHash
			u.HashToken = newHashToken
			return nil
		}
	}
	return ErrUserNotFound
}

func (m *MockRepository) updateTwoFactor(userID string, enabled bool, secret string) error {
	if m.Err != nil {
		return m.Err
	}
	for _, u := range m.Users {
		if u.ID == userID {
			u.TwoFactorEnabled = enabled
			u.TwoFactorSecret = secret
			return nil
		}
	}
	return ErrUserNotFound
}
